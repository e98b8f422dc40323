package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kolshub/themelab/internal/theme"
)

func TestRenderPlain(t *testing.T) {
	th := theme.Baseline()
	th.ID = "noir-1"

	var buf bytes.Buffer
	if err := Fprint(&buf, th); err != nil {
		t.Fatalf("Fprint() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Modern Noir Penthouse",
		"noir-1",
		"2900K",
		"#0c0d10",
		"#7bd1ff",
		"surface",
		"Apply",
		"walnut",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q:\n%s", want, out)
		}
	}

	// A buffer is not a terminal, so no escape sequences.
	if strings.Contains(out, "\x1b[") {
		t.Error("preview contains ANSI escapes for a non-terminal writer")
	}
}

func TestRenderMalformedColours(t *testing.T) {
	th := theme.Theme{Name: "Broken", Palette: theme.Palette{Background: "zzz"}}
	out := Render(&bytes.Buffer{}, th)
	if !strings.Contains(out, "#000000") {
		t.Errorf("malformed colour not normalised:\n%s", out)
	}
}
