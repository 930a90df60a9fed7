package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRevocationStore(t *testing.T) {
	t.Parallel()

	t.Run("recorded fingerprint is valid", func(t *testing.T) {
		store := NewRevocationStore()
		store.RecordValid("coach@osoc.be", "fp-1")

		require.True(t, store.IsValid("coach@osoc.be", "fp-1"))
		require.False(t, store.IsValid("coach@osoc.be", "fp-2"))
		require.False(t, store.IsValid("other@osoc.be", "fp-1"))
	})

	t.Run("recording overwrites the previous fingerprint", func(t *testing.T) {
		store := NewRevocationStore()
		store.RecordValid("coach@osoc.be", "fp-1")
		store.RecordValid("coach@osoc.be", "fp-2")

		require.False(t, store.IsValid("coach@osoc.be", "fp-1"))
		require.True(t, store.IsValid("coach@osoc.be", "fp-2"))
	})

	t.Run("invalidate removes the entry", func(t *testing.T) {
		store := NewRevocationStore()
		store.RecordValid("coach@osoc.be", "fp-1")
		store.Invalidate("coach@osoc.be")

		require.False(t, store.IsValid("coach@osoc.be", "fp-1"))
		require.Zero(t, store.Len())
	})

	t.Run("rotate swaps only the current fingerprint", func(t *testing.T) {
		store := NewRevocationStore()
		store.RecordValid("coach@osoc.be", "fp-1")

		require.True(t, store.Rotate("coach@osoc.be", "fp-1", "fp-2"))
		require.False(t, store.Rotate("coach@osoc.be", "fp-1", "fp-3"))
		require.True(t, store.IsValid("coach@osoc.be", "fp-2"))
	})

	t.Run("rotate fails for unknown accounts", func(t *testing.T) {
		store := NewRevocationStore()
		require.False(t, store.Rotate("ghost@osoc.be", "fp-1", "fp-2"))
	})
}

func TestRevocationStoreConcurrentRotation(t *testing.T) {
	t.Parallel()

	store := NewRevocationStore()
	store.RecordValid("coach@osoc.be", "stale")

	const attempts = 32

	var wg sync.WaitGroup
	wins := make(chan int, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if store.Rotate("coach@osoc.be", "stale", Fingerprint(string(rune('a'+id)))) {
				wins <- id
			}
		}(i)
	}

	wg.Wait()
	close(wins)

	var winners int
	for range wins {
		winners++
	}
	require.Equal(t, 1, winners)
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	require.Equal(t, Fingerprint("token"), Fingerprint("token"))
	require.NotEqual(t, Fingerprint("token-a"), Fingerprint("token-b"))
	require.Len(t, Fingerprint("token"), 64)
}
