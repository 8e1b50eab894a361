// Package filter provides content filters applied to fetched documents
// before change detection. Each filter takes the raw content plus a
// per-filter configuration mapping (the subfilter) and returns the
// transformed text.
package filter

// Subfilter is the per-filter configuration supplied alongside content.
// Keys a filter does not recognise are ignored. A nil Subfilter behaves
// like an empty one.
type Subfilter map[string]any

// Filter transforms content for one pipeline stage.
type Filter interface {
	// Filter applies the transformation. The subfilter is decoded and
	// validated on every call; filters keep no state between calls.
	Filter(content string, subfilter Subfilter) (string, error)

	// Name returns the filter kind for logging/debugging.
	Name() string
}
