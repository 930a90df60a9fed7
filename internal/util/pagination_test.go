package util

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePage(t *testing.T) {
	t.Parallel()

	t.Run("keeps values inside bounds", func(t *testing.T) {
		page, limit := NormalizePage(3, 25)
		require.Equal(t, 3, page)
		require.Equal(t, 25, limit)
	})

	t.Run("clamps low values", func(t *testing.T) {
		page, limit := NormalizePage(0, -5)
		require.Equal(t, 1, page)
		require.Equal(t, DefaultPageSize, limit)
	})

	t.Run("clamps oversized limits", func(t *testing.T) {
		_, limit := NormalizePage(1, 10_000)
		require.Equal(t, MaxPageSize, limit)
	})
}

func TestOffset(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Offset(1, 50))
	require.Equal(t, 100, Offset(3, 50))
}

func TestPageMeta(t *testing.T) {
	t.Parallel()

	t.Run("rounds total pages up", func(t *testing.T) {
		meta := PageMeta(1, 50, 101)
		require.Equal(t, 3, meta.TotalPages)
		require.Equal(t, 101, meta.Total)
	})

	t.Run("empty result has zero pages", func(t *testing.T) {
		meta := PageMeta(1, 50, 0)
		require.Zero(t, meta.TotalPages)
	})
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	query := url.Values{"page": []string{"2"}, "limit": []string{"abc"}}
	page, limit := ParsePage(query)
	require.Equal(t, 2, page)
	require.Equal(t, DefaultPageSize, limit)
}
