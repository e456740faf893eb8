// Package view serves the list, search and detail pages of the CRM.
package view

import (
	"context"
	"strings"
	"sync"
)

// Matcher reports whether item matches the search query q.
type Matcher[T any] func(item *T, q string) bool

// Fetcher loads every row a list shows.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// List holds the unfiltered rows of one page. Rows are loaded once by Reload
// and searched in memory.
type List[T any] struct {
	fetch Fetcher[T]
	match Matcher[T]

	mu    sync.RWMutex
	items []T
}

func NewList[T any](fetch Fetcher[T], match Matcher[T]) *List[T] {
	return &List[T]{fetch: fetch, match: match}
}

// Reload replaces the held rows with a fresh fetch. On error the previous
// rows stay.
func (l *List[T]) Reload(ctx context.Context) error {
	items, err := l.fetch(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	return nil
}

// Items returns a copy of the unfiltered rows.
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]T(nil), l.items...)
}

func (l *List[T]) Search(q string) []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Filter(l.items, q, l.match)
}

// Apply runs fn on every held row in place and reports whether fn changed
// any of them.
func (l *List[T]) Apply(fn func(item *T) bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	changed := false
	for i := range l.items {
		if fn(&l.items[i]) {
			changed = true
		}
	}
	return changed
}

// Page is the response of a list endpoint.
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Filtered int `json:"filtered"`
}

func (l *List[T]) Page(q string) Page[T] {
	l.mu.RLock()
	total := len(l.items)
	l.mu.RUnlock()

	items := l.Search(q)
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Filtered: len(items)}
}

// Filter keeps the items matching q in their original order. An empty q
// keeps everything.
func Filter[T any](items []T, q string, match Matcher[T]) []T {
	if q == "" {
		return append([]T(nil), items...)
	}
	var out []T
	for i := range items {
		if match(&items[i], q) {
			out = append(out, items[i])
		}
	}
	return out
}

// contains is a case-insensitive substring test.
func contains(field, q string) bool {
	return strings.Contains(strings.ToLower(field), strings.ToLower(q))
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
