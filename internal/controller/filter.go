package controller

import (
	"slices"
	"sort"
	"strings"

	"filelib-cli/internal/model"

	"github.com/sahilm/fuzzy"
)

func SetFilter(s State, q string) State {
	if s.Filter == q {
		return s
	}
	out := s.clone()
	out.Filter = q
	return out
}

// SetSort reorders the items, keeping their checked state.
func SetSort(s State, o model.SortOrder) State {
	out := s.clone()
	out.Sort = o
	sort.SliceStable(out.Items, func(i, j int) bool {
		return o.Less(out.Items[i].Entry, out.Items[j].Entry)
	})
	if o.Descending {
		slices.Reverse(out.Items)
	}
	return out
}

// Visible returns the indexes of items whose name matches the filter, in listing order.
func Visible(s State) []int {
	q := strings.TrimSpace(s.Filter)
	idx := make([]int, 0, len(s.Items))
	if q == "" {
		for i := range s.Items {
			idx = append(idx, i)
		}
		return idx
	}
	names := make([]string, len(s.Items))
	for i, it := range s.Items {
		names[i] = it.Entry.Name()
	}
	for _, m := range fuzzy.Find(q, names) {
		idx = append(idx, m.Index)
	}
	sort.Ints(idx)
	return idx
}
