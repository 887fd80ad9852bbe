package syntax

import "testing"

func TestFunctions(t *testing.T) {
	t.Parallel()

	f := &File{Items: []Item{
		&OtherItem{Kind: "use_declaration"},
		&Function{Name: "a"},
		&OtherItem{Kind: "struct_item"},
		&Function{Name: "b"},
	}}

	fns := Functions(f)
	if len(fns) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(fns))
	}
	if fns[0].Name != "a" || fns[1].Name != "b" {
		t.Errorf("names = %q, %q; want a, b", fns[0].Name, fns[1].Name)
	}
}

func TestFunctionsEmpty(t *testing.T) {
	t.Parallel()

	if fns := Functions(nil); fns != nil {
		t.Errorf("Functions(nil) = %v, want nil", fns)
	}
	if fns := Functions(&File{Items: []Item{&OtherItem{Kind: "mod_item"}}}); len(fns) != 0 {
		t.Errorf("expected no functions, got %d", len(fns))
	}
}
