package lang

import (
	"github.com/smacker/go-tree-sitter/rust"
)

// Rust is the name under which the Rust grammar is registered.
const Rust = "rust"

func init() {
	Languages[Rust] = &Language{
		Name:       Rust,
		Extensions: []string{".rs"},
		lang:       rust.GetLanguage(),
	}
}
