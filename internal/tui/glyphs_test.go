package tui

import "testing"

func TestGlyphs_FromEnv(t *testing.T) {
	t.Setenv("FILELIB_TUI_GLYPHS", "")
	setGlyphs(glyphSetUnicode)
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	t.Setenv("FILELIB_TUI_GLYPHS", "ascii")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs; got %v", got)
	}
	if got := glyphEllipsis(); got != "..." {
		t.Fatalf("expected ascii ellipsis; got %q", got)
	}

	// Unknown values are ignored (keep current).
	t.Setenv("FILELIB_TUI_GLYPHS", "bogus")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}

	setGlyphs(glyphSetUnicode)
}

func TestTruncate_UsesGlyphEllipsis(t *testing.T) {
	setGlyphs(glyphSetASCII)
	defer setGlyphs(glyphSetUnicode)

	if got := truncate("quarterly-report.pdf", 10); got != "quarter..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short names untouched, got %q", got)
	}
}
