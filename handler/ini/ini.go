// Package ini implements the INI format handler, backed by gopkg.in/ini.v1.
//
// The version of a document, when present, is expected in the "version" key
// of the "[meta]" section.
package ini

import (
	"github.com/spf13/afero"
	goini "gopkg.in/ini.v1"

	"github.com/leodido/confsearch"
)

// DefaultFilename is the file name searched for when the caller does not
// override it.
const DefaultFilename = "app.ini"

// Document is a parsed INI configuration document.
type Document struct {
	file *goini.File
}

// File exposes the underlying INI file for typed key access.
func (d *Document) File() *goini.File {
	return d.file
}

// Map flattens the document into a section -> key -> value map. Keys outside
// any section end up at the top level.
func (d *Document) Map() map[string]any {
	out := map[string]any{}
	for _, section := range d.file.Sections() {
		keys := map[string]any{}
		for _, key := range section.Keys() {
			keys[key.Name()] = key.Value()
		}

		if section.Name() == goini.DefaultSection {
			for name, value := range keys {
				out[name] = value
			}

			continue
		}
		out[section.Name()] = keys
	}

	return out
}

// Handler loads and merges INI documents.
type Handler struct{}

// New returns an INI handler.
func New() Handler {
	return Handler{}
}

func (Handler) Empty() *Document {
	return &Document{file: goini.Empty()}
}

func (Handler) FromString(data string) (*Document, error) {
	file, err := goini.Load([]byte(data))
	if err != nil {
		return nil, err
	}

	return &Document{file: file}, nil
}

func (h Handler) FromFile(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	return h.FromString(string(data))
}

// Version returns the value of the "[meta]" section's "version" key, or nil
// when the section, the key, or a well-formed value is absent.
func (Handler) Version(doc *Document) *confsearch.Version {
	section, err := doc.file.GetSection("meta")
	if err != nil || !section.HasKey("version") {
		return nil
	}

	v, err := confsearch.ParseVersion(section.Key("version").String())
	if err != nil {
		return nil
	}

	return &v
}

// UpdateFromFile merges the file at path into doc: keys present in the file
// overwrite existing ones, sections only present in doc are kept.
func (Handler) UpdateFromFile(doc *Document, fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}

	return doc.file.Append([]byte(data))
}

func (Handler) DefaultFilename() string {
	return DefaultFilename
}

var _ confsearch.Handler[*Document] = Handler{}
