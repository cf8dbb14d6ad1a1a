package cli

import (
	"fmt"
	"strings"
)

type invalidValueError struct {
	name    string
	value   string
	allowed []string
}

func (e invalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %q (want %s)", e.name, e.value, strings.Join(e.allowed, "|"))
}

type missingLibraryError struct{}

func (missingLibraryError) Error() string {
	return "no library selected; pass --library, set FILELIB_LIBRARY, or run `filelib config set library.id <id>`"
}

func errMissingLibrary() error {
	return missingLibraryError{}
}
