package util

import (
	"net/url"
	"strconv"
	"strings"

	"osoc-selections-backend/internal/model"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// NormalizePage clamps a page/limit pair to sane bounds.
func NormalizePage(page int, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// Offset converts a normalized page/limit pair into a row offset.
func Offset(page int, limit int) int {
	return (page - 1) * limit
}

// PageMeta builds the pagination envelope for a list response.
func PageMeta(page int, limit int, total int) model.Meta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return model.Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// ParsePage reads page/limit query parameters, falling back to defaults
// for missing or unparseable values.
func ParsePage(query url.Values) (int, int) {
	return NormalizePage(
		parseIntOrDefault(query.Get("page"), 1),
		parseIntOrDefault(query.Get("limit"), DefaultPageSize),
	)
}

func parseIntOrDefault(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}
