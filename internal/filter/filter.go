// Package filter derives filtered views of articles, bookmarks and content ideas.
// Every function is pure: it never reorders or mutates its input.
package filter

import (
	"strings"
	"time"

	"github.com/bryan-buckman/mvphub/internal/model"
)

// All is the selector value that disables a category or type filter.
const All = "all"

// Criteria selects articles. Zero values disable the matching criterion.
type Criteria struct {
	Category   string // exact match; "" or All matches everything
	Source     string // exact match; "" matches everything
	MaxAgeDays int    // published within the last N days; <= 0 disables
	Query      string // case-insensitive substring of title, excerpt or any tag
}

// IsDefault reports whether c filters nothing.
func (c Criteria) IsDefault() bool {
	return isAll(c.Category) && c.Source == "" && c.MaxAgeDays <= 0 && c.Query == ""
}

func isAll(v string) bool {
	return v == "" || v == All
}

// Articles returns the articles satisfying every active criterion, in input order.
// The result is never nil.
func Articles(articles []model.Article, c Criteria, now time.Time) []model.Article {
	var cutoff time.Time
	if c.MaxAgeDays > 0 {
		cutoff = now.AddDate(0, 0, -c.MaxAgeDays)
	}
	query := strings.ToLower(c.Query)

	out := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if !isAll(c.Category) && a.Category != c.Category {
			continue
		}
		if c.Source != "" && a.Source != c.Source {
			continue
		}
		if c.MaxAgeDays > 0 && !publishedSince(a.Date, cutoff) {
			continue
		}
		if query != "" && !matchesQuery(a, query) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func publishedSince(date string, cutoff time.Time) bool {
	t, err := model.ParseDate(date)
	if err != nil {
		return false
	}
	return !t.Before(cutoff)
}

func matchesQuery(a model.Article, query string) bool {
	if strings.Contains(strings.ToLower(a.Title), query) ||
		strings.Contains(strings.ToLower(a.Excerpt), query) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// Bookmarks returns the bookmarks in category, or all of them when category is "" or All.
func Bookmarks(bookmarks []model.Bookmark, category string) []model.Bookmark {
	out := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if isAll(category) || b.Category == category {
			out = append(out, b)
		}
	}
	return out
}

// ContentIdeas returns the ideas of type t, or all of them when t is "" or All.
func ContentIdeas(ideas []model.ContentIdea, t string) []model.ContentIdea {
	out := make([]model.ContentIdea, 0, len(ideas))
	for _, idea := range ideas {
		if isAll(t) || string(idea.Type) == t {
			out = append(out, idea)
		}
	}
	return out
}

// Sources returns the distinct article sources in first-seen order.
func Sources(articles []model.Article) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range articles {
		if !seen[a.Source] {
			seen[a.Source] = true
			out = append(out, a.Source)
		}
	}
	return out
}

// Categories returns the distinct article categories in first-seen order.
func Categories(articles []model.Article) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range articles {
		if !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	return out
}
