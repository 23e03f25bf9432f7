// Package storage defines the corpus file-system abstraction.
package storage

import "time"

// FileMeta is a lightweight description of one corpus document.
type FileMeta struct {
	Path      string
	Checksum  string
	UpdatedAt time.Time
}

// Provider is the read-only interface over the recipe corpus.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to the
	// corpus root). An empty dir lists the whole corpus.
	List(dir string) ([]FileMeta, error)
	// Read returns the raw bytes of the file at path (relative to the
	// corpus root).
	Read(path string) ([]byte, error)
}
