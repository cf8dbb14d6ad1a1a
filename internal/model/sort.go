package model

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

type SortKey string

const (
	SortByName SortKey = "name"
	SortBySize SortKey = "size"
)

// SortKeys lists the accepted --sort values.
var SortKeys = []string{string(SortByName), string(SortBySize)}

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByName, nil
	case SortByName, SortBySize:
		return k, nil
	default:
		return "", fmt.Errorf("unsupported sort key %q", s)
	}
}

// SortOrder is how a listing is ordered. The zero value is by name, ascending.
type SortOrder struct {
	Key        SortKey
	Descending bool
}

// NextKey cycles name -> size -> name, keeping the direction.
func (o SortOrder) NextKey() SortOrder {
	if o.Key == SortBySize {
		o.Key = SortByName
	} else {
		o.Key = SortBySize
	}
	return o
}

func (o SortOrder) String() string {
	k := o.Key
	if k == "" {
		k = SortByName
	}
	if o.Descending {
		return string(k) + " desc"
	}
	return string(k)
}

// Less orders everything that is not a plain file first, then by the key, then by path.
// It is the ascending order; Descending reverses the whole listing.
func (o SortOrder) Less(a, b FileEntry) bool {
	aFile := a.Type == EntryTypeFile
	bFile := b.Type == EntryTypeFile
	if aFile != bFile {
		return !aFile
	}
	if o.Key == SortBySize && a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Path < b.Path
}

// SortEntries orders a listing the way the library UI shows it by default.
func SortEntries(entries []FileEntry) {
	SortEntriesBy(entries, SortOrder{})
}

// SortEntriesBy sorts in place. A descending order reverses the complete ascending listing,
// files included, the same way the library service does.
func SortEntriesBy(entries []FileEntry, o SortOrder) {
	sort.SliceStable(entries, func(i, j int) bool {
		return o.Less(entries[i], entries[j])
	})
	if o.Descending {
		slices.Reverse(entries)
	}
}
