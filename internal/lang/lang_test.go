package lang

import (
	"context"
	"testing"
)

func TestForExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want string
	}{
		{".rs", "rust"},
		{".py", ""},
		{".go", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()
			got := ForExtension(tt.ext)
			if got != tt.want {
				t.Errorf("ForExtension(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestLanguagesRegistered(t *testing.T) {
	t.Parallel()

	rs, ok := Languages[Rust]
	if !ok {
		t.Fatal("rust language not registered")
	}
	if rs.lang == nil {
		t.Error("rust grammar is nil")
	}
}

func TestNewParser(t *testing.T) {
	t.Parallel()

	p := Languages[Rust].NewParser()
	if p == nil {
		t.Fatal("NewParser returned nil")
	}
	defer p.Close()

	tree, err := p.ParseCtx(context.Background(), nil, []byte("fn main() {}"))
	if err != nil {
		t.Fatalf("ParseCtx: %v", err)
	}
	defer tree.Close()
	if got := tree.RootNode().Type(); got != "source_file" {
		t.Errorf("root node = %q, want source_file", got)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"[i32; 3]", "[i32; 3]"},
		{"  Vec<\n    u8,\n>  ", "Vec< u8, >"},
		{"&'a\tstr", "&'a str"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CollapseWhitespace(tt.in); got != tt.want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
