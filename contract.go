package confsearch

import "github.com/spf13/afero"

// Handler parses and merges configuration documents of type T.
//
// The lookup logic never interprets document contents itself: everything
// format-specific (parsing, the meta.version convention, merge semantics) is
// delegated to the handler. Two handlers ship with this library, see the
// handler/ini and handler/json packages.
//
// T must be a reference type (a pointer or a map): UpdateFromFile mutates the
// document in place.
type Handler[T any] interface {
	// Empty returns a fresh, empty document.
	Empty() T

	// FromString parses an in-memory document.
	FromString(data string) (T, error)

	// FromFile parses the file at path.
	FromFile(fs afero.Fs, path string) (T, error)

	// Version extracts the optional meta.version value from doc.
	// It returns nil when the document does not declare one.
	Version(doc T) *Version

	// UpdateFromFile merges the file at path into doc: keys present in the
	// file overwrite existing ones, everything else is left untouched.
	UpdateFromFile(doc T, fs afero.Fs, path string) error

	// DefaultFilename is the file name searched for when the caller does not
	// specify one (eg. "app.ini").
	DefaultFilename() string
}
