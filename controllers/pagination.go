package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// parsePaginationParams reads ?page= and ?limit=, falling back to the
// defaults on missing or non-positive values and capping limit.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	page, limit := defaultPage, defaultLimit

	if p, err := strconv.Atoi(ctx.Query("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(ctx.Query("limit")); err == nil && l > 0 {
		limit = min(l, maxLimit)
	}
	return page, limit
}

// paginate slices one page out of items and builds the meta block.
func paginate[T any](items []T, page, limit int) ([]T, gin.H) {
	if items == nil {
		items = []T{}
	}
	total := len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	totalPages := (total + limit - 1) / limit
	return items[start:end], gin.H{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"total_pages": totalPages,
		"has_more":    total > page*limit,
	}
}
