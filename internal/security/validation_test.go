package security

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https public", url: "https://example.com/seeds.json", wantErr: false},
		{name: "empty", url: "", wantErr: true},
		{name: "plain http", url: "http://example.com/seeds.json", wantErr: true},
		{name: "file scheme", url: "file:///etc/passwd", wantErr: true},
		{name: "localhost", url: "https://localhost/seeds.json", wantErr: true},
		{name: "loopback", url: "https://127.0.0.1/seeds.json", wantErr: true},
		{name: "private v4", url: "https://192.168.1.10/seeds.json", wantErr: true},
		{name: "private 172", url: "https://172.20.0.1/seeds.json", wantErr: true},
		{name: "link local", url: "https://169.254.169.254/latest", wantErr: true},
		{name: "ipv6 loopback", url: "https://[::1]/seeds.json", wantErr: true},
		{name: "no host", url: "https:///seeds.json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHTTPURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMemberName(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "plain", path: "seeds.json", wantErr: false},
		{name: "nested", path: "pack/presets.yaml", wantErr: false},
		{name: "empty", path: "", wantErr: true},
		{name: "traversal", path: "../../etc/passwd", wantErr: true},
		{name: "absolute", path: "/etc/passwd", wantErr: true},
		{name: "windows traversal", path: `pack\\..\\..\\x.json`, wantErr: true},
		{name: "dots in name", path: "seeds..v2.json", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMemberName(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMemberName(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestSafeUint8(t *testing.T) {
	tests := []struct {
		in   int
		want uint8
	}{
		{-5, 0}, {0, 0}, {128, 128}, {255, 255}, {256, 255}, {1 << 20, 255},
	}
	for _, tt := range tests {
		if got := SafeUint8(tt.in); got != tt.want {
			t.Errorf("SafeUint8(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLimitedReader(t *testing.T) {
	r := NewLimitedReader(strings.NewReader("0123456789"), 4)
	var buf bytes.Buffer
	_, err := io.Copy(&buf, r)
	if !errors.Is(err, ErrSizeLimit) {
		t.Fatalf("io.Copy() error = %v, want ErrSizeLimit", err)
	}
	if buf.String() != "0123" {
		t.Errorf("read %q, want %q", buf.String(), "0123")
	}

	r = NewLimitedReader(strings.NewReader("abc"), 10)
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("io.ReadAll() unexpected error: %v", err)
	}
	if string(data) != "abc" {
		t.Errorf("read %q, want %q", data, "abc")
	}

	r = NewLimitedReader(strings.NewReader("abcd"), 4)
	data, err = io.ReadAll(r)
	if err != nil {
		t.Fatalf("io.ReadAll() at exact limit: unexpected error: %v", err)
	}
	if string(data) != "abcd" {
		t.Errorf("read %q, want %q", data, "abcd")
	}

	r = NewLimitedReader(strings.NewReader("abcde"), 4)
	if _, err := io.ReadAll(r); !errors.Is(err, ErrSizeLimit) {
		t.Errorf("io.ReadAll() one byte over: error = %v, want ErrSizeLimit", err)
	}
}
