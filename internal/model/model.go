package model

import (
	"path"
	"strings"
)

type EntryType string

const (
	EntryTypeFile    EntryType = "file"
	EntryTypeFolder  EntryType = "folder"
	EntryTypeSymlink EntryType = "symlink"
	EntryTypeOther   EntryType = "other"
)

// FileEntry is one row of a library listing as returned by the files endpoint.
// Path is relative to the listed directory; Join turns it into a library path.
type FileEntry struct {
	Path string    `json:"path"`
	Size uint64    `json:"size"`
	Type EntryType `json:"type"`
}

// Name returns the last path element, keeping a trailing slash off folders.
func (e FileEntry) Name() string {
	p := strings.TrimRight(strings.TrimSpace(e.Path), "/")
	if p == "" {
		return "/"
	}
	return path.Base(p)
}

// Join resolves name against dir into a path from the library root. A name that already
// starts with "/" is taken as a library path.
func Join(dir, name string) string {
	if strings.HasPrefix(name, "/") {
		return path.Clean(name)
	}
	return path.Join("/", dir, name)
}

func (e FileEntry) IsFolder() bool {
	return e.Type == EntryTypeFolder
}

// TouchRequest is the JSON body of POST /api/library/{id}/touch.
type TouchRequest struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
}

// MoveRequest renames or moves one entry. From and To are library paths.
type MoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}
