package models

import "net/url"

// SortDirection is the order the server is asked to return a list in.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// SortSpec is the client-requested ordering for a list view. Sorting is
// entirely delegated to the server; the client never re-orders a response.
// A zero SortSpec means "server default order".
type SortSpec struct {
	Key       string
	Direction SortDirection
}

// Toggle returns the spec after the user clicks the column key: the same key
// flips the direction, a new key starts ascending.
func (s SortSpec) Toggle(key string) SortSpec {
	if s.Key == key {
		if s.Direction == Asc {
			return SortSpec{Key: key, Direction: Desc}
		}
		return SortSpec{Key: key, Direction: Asc}
	}
	return SortSpec{Key: key, Direction: Asc}
}

// Values encodes the spec as the sortBy/sortDir query parameters the API
// expects. A zero spec encodes to nothing.
func (s SortSpec) Values() url.Values {
	if s.Key == "" {
		return nil
	}
	dir := s.Direction
	if dir == "" {
		dir = Asc
	}
	return url.Values{
		"sortBy":  []string{s.Key},
		"sortDir": []string{string(dir)},
	}
}
