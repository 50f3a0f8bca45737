package catalog

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed data/*.yaml
var embeddedCatalog embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// EmbeddedFS returns the bundled catalog documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalog, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Default returns the bundled catalog. The embedded documents are validated by
// tests, so a load failure here is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		cat, err := LoadFS(EmbeddedFS())
		if err != nil {
			panic(err)
		}
		defaultCatalog = cat
	})
	return defaultCatalog
}
