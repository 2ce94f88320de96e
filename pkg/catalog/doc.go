// Package catalog provides the data model, registry and query engine for
// fathom's curated ASCII art library.
//
// # Overview
//
// A catalog is a set of hand-authored pieces of ASCII art organised into
// named themes. Every piece carries descriptive metadata (what it depicts,
// why it works, which characters and techniques it uses) and an open bag of
// queryable tags. The Registry owns all themes plus a global index of pieces
// by ID, and answers multi-criteria queries over them.
//
// # Core Concepts
//
// Pieces are the unit of content. A piece ID is always "<theme>:<name>",
// which keeps IDs unique across themes without coordination between theme
// authors.
//
// Themes are named, described collections of pieces. Piece order within a
// theme is the authoring order and is preserved by every read operation.
//
// Tags are an ordered mapping from tag name to a TagValue, which is either
// text, a boolean flag, or a list of strings. A handful of names (mood,
// movement, density, size, bioluminescence) are conventional, but themes may
// introduce any others.
//
// # Usage Example
//
//	reg := catalog.NewRegistry()
//	reg.RegisterTheme(catalog.Theme{Name: "deep-sea", Pieces: pieces})
//
//	glowing := reg.Query(catalog.Query{
//		Theme: "deep-sea",
//		Tags:  map[string]catalog.TagValue{catalog.TagBioluminescence: catalog.Flag(true)},
//	})
//
//	if p, ok := reg.Random("deep-sea"); ok {
//		fmt.Println(p.Art)
//	}
//
// # Errors
//
// Only AddPiece fails: unknown themes, IDs without the theme prefix and
// duplicate IDs are reported as *ThemeNotFoundError, *SchemaViolationError
// and *ConflictError. Content problems are never errors here; use package
// validate to inspect a registry.
//
// # Concurrency
//
// A Registry is safe for concurrent use. Registration takes a write lock,
// everything else a read lock.
package catalog
