package main

import (
	"os"
	"strings"

	"filelib-cli/internal/cli"
)

func isLibraryPath(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "/")
}

func rewriteDirectPathArgs(argv []string) []string {
	// Convenience: `filelib /docs` opens the TUI in /docs, like `filelib --path /docs`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Users often pass persistent flags first (e.g. `filelib --library x /docs`), so we look
	// for the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--server":    true,
		"--library":   true,
		"--path":      true,
		"--config":    true,
		"--log-file":  true,
		"--log-level": true,
		"--format":    true,
		"--timeout":   true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "--path")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// Everything after -- is positional; leave it to cobra.
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
			}
			continue
		}

		// First positional token: only a bare path with nothing after it is rewritten.
		if isLibraryPath(a) && i == len(argv)-1 {
			return rewrite(i)
		}
		return argv
	}

	return argv
}

func main() {
	argv := rewriteDirectPathArgs(os.Args)
	if err := cli.Execute(argv[1:]); err != nil {
		os.Exit(1)
	}
}
