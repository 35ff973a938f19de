package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortSpec_Toggle(t *testing.T) {
	tests := []struct {
		name  string
		start SortSpec
		key   string
		want  SortSpec
	}{
		{
			name:  "new key starts ascending",
			start: SortSpec{Key: "dueDate", Direction: Asc},
			key:   "title",
			want:  SortSpec{Key: "title", Direction: Asc},
		},
		{
			name:  "same key flips to descending",
			start: SortSpec{Key: "title", Direction: Asc},
			key:   "title",
			want:  SortSpec{Key: "title", Direction: Desc},
		},
		{
			name:  "same key flips back to ascending",
			start: SortSpec{Key: "title", Direction: Desc},
			key:   "title",
			want:  SortSpec{Key: "title", Direction: Asc},
		},
		{
			name:  "from zero spec",
			start: SortSpec{},
			key:   "brand",
			want:  SortSpec{Key: "brand", Direction: Asc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.Toggle(tt.key))
		})
	}
}

func TestSortSpec_Toggle_TwiceReturnsToAscending(t *testing.T) {
	s := SortSpec{Key: "dueDate", Direction: Asc}
	s = s.Toggle("title")
	s = s.Toggle("title")
	s = s.Toggle("title")
	assert.Equal(t, SortSpec{Key: "title", Direction: Asc}, s)
}

func TestSortSpec_Values(t *testing.T) {
	assert.Nil(t, SortSpec{}.Values())

	v := SortSpec{Key: "licensePlate", Direction: Desc}.Values()
	assert.Equal(t, "licensePlate", v.Get("sortBy"))
	assert.Equal(t, "desc", v.Get("sortDir"))

	// direction defaults to asc when unset
	v = SortSpec{Key: "brand"}.Values()
	assert.Equal(t, "asc", v.Get("sortDir"))
}
