package usecase

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNatCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"Option 2", "Option 10", -1},
		{"Option 10", "Option 2", 1},
		{"abc", "abc", 0},
		{"x9", "x10", -1},
		{"a", "b", -1},
		{"B", "a", -1},
	}
	for _, c := range cases {
		got := natCompare(c.a, c.b)
		if got < 0 {
			got = -1
		} else if got > 0 {
			got = 1
		}
		assert.Equal(t, c.want, got, "%q vs %q", c.a, c.b)
	}
}

func TestNatCompareSort(t *testing.T) {
	names := []string{"XL", "Size 10", "Size 2", "Size 1"}
	sort.SliceStable(names, func(i, j int) bool { return natCompare(names[i], names[j]) < 0 })
	assert.Equal(t, []string{"Size 1", "Size 2", "Size 10", "XL"}, names)
}
