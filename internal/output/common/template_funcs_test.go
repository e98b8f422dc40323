package common

import (
	"bytes"
	"embed"
	"strings"
	"testing"
	"text/template"

	tmplloader "github.com/kolshub/themelab/internal/output/template"
	"github.com/kolshub/themelab/internal/theme"
)

//go:embed testdata/*.tmpl
var testFS embed.FS

func render(t *testing.T, text string, data any) string {
	t.Helper()
	tmpl, err := template.New("test").Funcs(TemplateFuncs()).Parse(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		t.Fatalf("execute %q: %v", text, err)
	}
	return buf.String()
}

func TestTemplateFuncs(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{name: "hex normalises", tmpl: `{{ hex "ABCDEF" }}`, want: "#abcdef"},
		{name: "hex malformed", tmpl: `{{ hex "nope" }}`, want: "#000000"},
		{name: "hexNoHash", tmpl: `{{ hexNoHash "#7BD1FF" }}`, want: "7bd1ff"},
		{name: "rgb", tmpl: `{{ rgb "#7bd1ff" }}`, want: "rgb(123, 209, 255)"},
		{name: "rgba piped", tmpl: `{{ "#7bd1ff" | rgba 0.4 }}`, want: "rgba(123, 209, 255, 0.4)"},
		{name: "rgba clamps", tmpl: `{{ "#000000" | rgba 3.0 }}`, want: "rgba(0, 0, 0, 1)"},
		{name: "rgbSpaces", tmpl: `{{ rgbSpaces "#0c0d10" }}`, want: "12 13 16"},
		{name: "hsl red", tmpl: `{{ hsl "#ff0000" }}`, want: "hsl(0.0, 100.0%, 50.0%)"},
		{name: "hslSpaces white", tmpl: `{{ hslSpaces "#ffffff" }}`, want: "0.0 0.0% 100.0%"},
		{name: "mix piped", tmpl: `{{ "#000000" | mix "#ffffff" 0.5 }}`, want: "#808080"},
		{name: "px", tmpl: `{{ px 24 }}`, want: "24px"},
		{name: "ms", tmpl: `{{ ms 320 }}`, want: "320ms"},
		{name: "fixed", tmpl: `{{ fixed 0.85 }}`, want: "0.85"},
		{name: "percent", tmpl: `{{ percent 0.4 }}`, want: "40%"},
		{name: "trimPrefix", tmpl: `{{ "#abc" | trimPrefix "#" }}`, want: "abc"},
		{name: "replace", tmpl: `{{ "a_b" | replace "_" "-" }}`, want: "a-b"},
		{name: "quote", tmpl: `{{ quote "Cinzel" }}`, want: `"Cinzel"`},
		{name: "toUpper", tmpl: `{{ toUpper "inter" }}`, want: "INTER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, tt.tmpl, nil); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJoinInts(t *testing.T) {
	got := render(t, `{{ joinInts ", " .BeatReactivity.Bands }}`, theme.Baseline())
	if got != "60, 120, 240" {
		t.Errorf("joinInts = %q", got)
	}
}

func TestExecuteTemplate(t *testing.T) {
	loader := tmplloader.New("test", testFS, "")

	out, err := ExecuteTemplate(loader, "testdata/vars.tmpl", theme.Baseline())
	if err != nil {
		t.Fatalf("ExecuteTemplate() error = %v", err)
	}
	if !strings.Contains(string(out), "--bg: #0c0d10;") {
		t.Errorf("output = %s", out)
	}

	if _, err := ExecuteTemplate(loader, "testdata/broken.tmpl", theme.Baseline()); err == nil {
		t.Error("expected parse error")
	}
	if _, err := ExecuteTemplate(loader, "testdata/missing.tmpl", theme.Baseline()); err == nil {
		t.Error("expected load error")
	}
}
