package template

import (
	"embed"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

//go:embed testdata/*.tmpl
var testEmbedFS embed.FS

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	loader := New("css", testEmbedFS, tmpDir)

	t.Run("embedded when no custom exists", func(t *testing.T) {
		content, fromCustom, err := loader.Load("testdata/card.tmpl")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fromCustom {
			t.Error("expected embedded template, got custom")
		}
		if string(content) != "{{ .Name }}\n" {
			t.Errorf("content = %q", content)
		}
	})

	t.Run("custom overrides embedded", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "css", "testdata", "card.tmpl")
		if err := os.MkdirAll(filepath.Dir(customPath), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(customPath, []byte("custom"), 0o644); err != nil {
			t.Fatal(err)
		}

		content, fromCustom, err := loader.Load("testdata/card.tmpl")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !fromCustom || string(content) != "custom" {
			t.Errorf("Load() = %q, custom %v", content, fromCustom)
		}
		if !loader.HasCustomTemplate("testdata/card.tmpl") {
			t.Error("HasCustomTemplate() = false")
		}
	})

	t.Run("missing template", func(t *testing.T) {
		if _, _, err := loader.Load("nonexistent.tmpl"); err == nil {
			t.Error("expected error for non-existent template")
		}
	})
}

func TestLoaderWithoutCustomBase(t *testing.T) {
	loader := New("css", testEmbedFS, "")
	if _, fromCustom, err := loader.Load("testdata/card.tmpl"); err != nil || fromCustom {
		t.Errorf("Load() custom=%v err=%v", fromCustom, err)
	}
	if loader.HasCustomTemplate("testdata/card.tmpl") {
		t.Error("HasCustomTemplate() should be false without a base")
	}
	if err := loader.DumpTemplate("testdata/card.tmpl", false); err == nil {
		t.Error("DumpTemplate() expected error without a base")
	}
}

func TestLoaderPaths(t *testing.T) {
	loader := New("tailwind", testEmbedFS, "/etc/themelab/templates")
	if got := loader.CustomDir(); got != filepath.Join("/etc/themelab/templates", "tailwind") {
		t.Errorf("CustomDir() = %q", got)
	}
	if got := loader.CustomPath("globals.css.tmpl"); got != filepath.Join("/etc/themelab/templates", "tailwind", "globals.css.tmpl") {
		t.Errorf("CustomPath() = %q", got)
	}
	if loader.Name() != "tailwind" {
		t.Errorf("Name() = %q", loader.Name())
	}
}

func TestListEmbeddedTemplates(t *testing.T) {
	loader := New("css", testEmbedFS, "")
	got, err := loader.ListEmbeddedTemplates()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "testdata/card.tmpl" || got[1] != "testdata/vars.css.tmpl" {
		t.Errorf("ListEmbeddedTemplates() = %v", got)
	}
}

func TestDumpTemplates(t *testing.T) {
	tmpDir := t.TempDir()
	loader := New("css", testEmbedFS, tmpDir)

	dumped, err := loader.DumpAllTemplates(false)
	if err != nil {
		t.Fatalf("DumpAllTemplates() error = %v", err)
	}
	if len(dumped) != 2 {
		t.Fatalf("dumped %d templates, want 2", len(dumped))
	}
	for _, p := range dumped {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("dumped file missing: %v", err)
		}
	}

	// A second dump without force skips everything.
	dumped, err = loader.DumpAllTemplates(false)
	if !errors.Is(err, ErrTemplateExists) {
		t.Errorf("second DumpAllTemplates() error = %v, want ErrTemplateExists", err)
	}
	if len(dumped) != 0 {
		t.Errorf("second dump wrote %v", dumped)
	}

	if err := loader.DumpTemplate("testdata/card.tmpl", true); err != nil {
		t.Errorf("forced DumpTemplate() error = %v", err)
	}
	if err := loader.DumpTemplate("missing.tmpl", true); err == nil {
		t.Error("DumpTemplate() expected error for unknown template")
	}
}

func TestGetInfo(t *testing.T) {
	tmpDir := t.TempDir()
	loader := New("css", testEmbedFS, tmpDir)

	info := loader.GetInfo("testdata/card.tmpl")
	if !info.EmbeddedExists || info.CustomExists {
		t.Errorf("GetInfo() = %+v", info)
	}

	if err := loader.DumpTemplate("testdata/card.tmpl", false); err != nil {
		t.Fatal(err)
	}
	if info := loader.GetInfo("testdata/card.tmpl"); !info.CustomExists {
		t.Errorf("GetInfo() after dump = %+v", info)
	}

	if info := loader.GetInfo("nope.tmpl"); info.EmbeddedExists {
		t.Error("GetInfo() reports unknown template as embedded")
	}
}
