// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/adiorany3/ransumruminansia/internal/feed"
)

// FloatPtr returns a pointer to the given float64 value.
func FloatPtr(v float64) *float64 {
	return &v
}

// BuildTable constructs a feed table over the default schema, failing the
// test on any table construction error.
func BuildTable(t *testing.T, ingredients ...feed.Ingredient) *feed.Table {
	t.Helper()
	table, err := feed.NewTable(feed.DefaultSchema(), ingredients)
	if err != nil {
		t.Fatalf("building feed table: %v", err)
	}
	return table
}
