package cli

import (
	"strings"
	"testing"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable("Name", "Score")
	table.AddRow("Dark Velvet", "5")
	table.AddRow("Short")
	table.AddRow("Long", "1", "extra")

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	for i, row := range table.rows {
		if len(row) != 2 {
			t.Errorf("row %d has %d cells, want 2", i, len(row))
		}
	}
	if table.rows[1][1] != "" {
		t.Errorf("padded cell = %q", table.rows[1][1])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable("Name", "Score", "Tags")
	table.AddRow("Dark Velvet", "5", "velvet dark")
	table.AddRow("Industrial Loft", "0", "")

	want := strings.Join([]string{
		"Name             Score  Tags",
		"---------------  -----  -----------",
		"Dark Velvet      5      velvet dark",
		"Industrial Loft  0",
		"",
	}, "\n")
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderWraps(t *testing.T) {
	table := NewTable("Name", "Tags")
	table.SetColumnMaxWidth(1, 10)
	table.AddRow("Goth", "goth gothic regency")

	want := strings.Join([]string{
		"Name  Tags",
		"----  -------",
		"Goth  goth",
		"      gothic",
		"      regency",
		"",
	}, "\n")
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableUnicodeWidth(t *testing.T) {
	table := NewTable("A", "B")
	table.AddRow("·x", "1")
	table.AddRow("ab", "2")

	lines := strings.Split(table.Render(), "\n")
	if lines[2] != "·x  1" || lines[3] != "ab  2" {
		t.Errorf("misaligned rows: %q", lines)
	}
}

func TestTableEmpty(t *testing.T) {
	if got := NewTable().Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "no limit", text: "a b c", width: 0, want: []string{"a b c"}},
		{name: "fits", text: "short", width: 10, want: []string{"short"}},
		{name: "wraps", text: "one two three", width: 7, want: []string{"one two", "three"}},
		{name: "splits long word", text: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapText() = %q, want %q", got, tt.want)
			}
		})
	}
}
