// Package catalog holds the reference data types shared by the catalog
// service and its HTTP handlers.
package catalog

// Source tells where a catalog answer came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Result carries catalog items together with their provenance. Cause is set
// when the live store could not be reached and Items is the built-in seed.
type Result[T any] struct {
	Items  []T
	Source Source
	Cause  error
}

func Live[T any](items []T) Result[T] {
	return Result[T]{Items: nonNil(items), Source: SourceLive}
}

func Cached[T any](items []T) Result[T] {
	return Result[T]{Items: nonNil(items), Source: SourceCache}
}

func Fallback[T any](items []T, cause error) Result[T] {
	return Result[T]{Items: nonNil(items), Source: SourceFallback, Cause: cause}
}

// Degraded reports whether Items is placeholder data.
func (r Result[T]) Degraded() bool {
	return r.Source == SourceFallback
}

// Filter keeps the items keep accepts, preserving provenance.
func (r Result[T]) Filter(keep func(T) bool) Result[T] {
	out := make([]T, 0, len(r.Items))
	for _, item := range r.Items {
		if keep(item) {
			out = append(out, item)
		}
	}
	r.Items = out
	return r
}

// First returns the first item accepted by match.
func (r Result[T]) First(match func(T) bool) (T, bool) {
	for _, item := range r.Items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
