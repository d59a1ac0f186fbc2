package cli

import (
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"png"}},
		{"svg", []string{"svg"}},
		{"png,uml,json", []string{"png", "uml", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"no output strips input extension", "", "diagram.uml", "diagram"},
		{"output with format extension", "out.png", "diagram.uml", "out"},
		{"output without extension", "out", "diagram.uml", "out"},
		{"output with unknown extension", "out.txt", "diagram.uml", "out.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestCacheDirPrefersConfig(t *testing.T) {
	cfg := Config{Cache: CacheConfig{Dir: "/var/cache/classdraw"}}
	dir, err := cacheDir(cfg)
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != "/var/cache/classdraw" {
		t.Errorf("dir = %q", dir)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err = cacheDir(Config{})
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != "/tmp/xdg/classdraw" {
		t.Errorf("dir = %q", dir)
	}
}
