package entity

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultMaxResults = 20
	MinMaxResults     = 1
	MaxMaxResults     = 500
)

var ErrEmptyQuery = errors.New("at least one search query is required")

// ScrapeRequest is the input of a new actor run. SearchQuery holds one query per line.
type ScrapeRequest struct {
	SearchQuery string `json:"searchQuery"`
	MaxResults  int    `json:"maxResults"`
}

// Queries returns the non-blank lines of SearchQuery, trimmed.
func (r ScrapeRequest) Queries() []string {
	var out []string
	for _, line := range strings.Split(r.SearchQuery, "\n") {
		if q := strings.TrimSpace(line); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// Validate fills the default result cap and checks bounds.
func (r *ScrapeRequest) Validate() error {
	if len(r.Queries()) == 0 {
		return ErrEmptyQuery
	}
	if r.MaxResults == 0 {
		r.MaxResults = DefaultMaxResults
	}
	if r.MaxResults < MinMaxResults || r.MaxResults > MaxMaxResults {
		return fmt.Errorf("maxResults must be between %d and %d, got %d", MinMaxResults, MaxMaxResults, r.MaxResults)
	}
	return nil
}
