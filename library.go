package main

import (
	"embed"
	"io"
	"io/fs"
	"os"
)

// The bundled library: resources that import resolves by name before
// looking for a file.
//
//go:embed lib/*.jsl
var libraryFS embed.FS

var libraryNames = map[string]string{
	"math":   "lib/math.jsl",
	"std":    "lib/std.jsl",
	"memory": "lib/memory.jsl",
}

// importer opens the source named by an import.
type importer func(name string) (io.ReadCloser, error)

// libraryImporter resolves bundled names first, then files in fsys, or files
// relative to the working directory when fsys is nil.
func libraryImporter(fsys fs.FS) importer {
	return func(name string) (io.ReadCloser, error) {
		if path, bundled := libraryNames[name]; bundled {
			return libraryFS.Open(path)
		}
		if fsys != nil {
			return fsys.Open(name)
		}
		return os.Open(name)
	}
}
