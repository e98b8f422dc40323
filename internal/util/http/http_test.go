package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kolshub/themelab/internal/security"
)

func TestFetch(t *testing.T) {
	var gotUA, gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotHeader = r.Header.Get("X-Test")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"Dark Velvet"}]`))
	}))
	defer srv.Close()

	resp, err := Fetch(context.Background(), srv.URL, FetchOptions{
		Headers: map[string]string{"X-Test": "yes"},
	})
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if string(resp.Data) != `[{"name":"Dark Velvet"}]` {
		t.Errorf("Fetch() data = %s", resp.Data)
	}
	if resp.ContentType != "application/json" {
		t.Errorf("ContentType = %q, want application/json", resp.ContentType)
	}
	if !strings.HasPrefix(gotUA, UserAgentName+"/") {
		t.Errorf("User-Agent = %q, want prefix %s/", gotUA, UserAgentName)
	}
	if gotHeader != "yes" {
		t.Errorf("X-Test header = %q, want yes", gotHeader)
	}
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/big" {
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.URL+"/missing", FetchOptions{}); err == nil {
		t.Error("Fetch() expected error for 404")
	}

	_, err := Fetch(context.Background(), srv.URL+"/big", FetchOptions{MaxBytes: 16})
	if !errors.Is(err, security.ErrSizeLimit) {
		t.Errorf("Fetch() error = %v, want ErrSizeLimit", err)
	}
}
