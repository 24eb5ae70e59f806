package models

import (
	"strconv"
	"strings"
)

// IncomeCategory is a single income category record as exchanged with the API.
// The zero value is the empty form item.
type IncomeCategory struct {
	ID   int64  `json:"id" yaml:"id" csv:"id"`
	Name string `json:"name" yaml:"name" csv:"name"`
}

// IsEmpty reports whether the category is the empty form item.
func (c IncomeCategory) IsEmpty() bool {
	return c.ID == 0 && c.Name == ""
}

// IncomeCategoryInput is the body sent when creating or updating a category.
type IncomeCategoryInput struct {
	Name string `json:"name"`
}

// PageMeta is the pagination metadata returned with a paged listing.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total,omitempty"`
}

// JoinIDs renders ids the way the API expects them in a path segment: "1,2,3".
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
