// Package json implements the JSON format handler.
//
// Documents are plain nested maps. The version of a document, when present,
// is expected at the "meta.version" path.
package json

import (
	stdjson "encoding/json"

	"dario.cat/mergo"
	"github.com/spf13/afero"

	"github.com/leodido/confsearch"
)

// DefaultFilename is the file name searched for when the caller does not
// override it.
const DefaultFilename = "app.json"

// Document is a parsed JSON configuration object.
type Document map[string]any

// Map returns the document itself, it already is a nested map.
func (d Document) Map() map[string]any {
	return d
}

// Handler loads and merges JSON documents.
type Handler struct{}

// New returns a JSON handler.
func New() Handler {
	return Handler{}
}

func (Handler) Empty() Document {
	return Document{}
}

func (Handler) FromString(data string) (Document, error) {
	var out Document
	if err := stdjson.Unmarshal([]byte(data), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (h Handler) FromFile(fs afero.Fs, path string) (Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	return h.FromString(string(data))
}

// Version returns the value at the "meta.version" path, or nil when it is
// absent or not a well-formed version string.
func (Handler) Version(doc Document) *confsearch.Version {
	meta, ok := doc["meta"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := meta["version"].(string)
	if !ok {
		return nil
	}

	v, err := confsearch.ParseVersion(raw)
	if err != nil {
		return nil
	}

	return &v
}

// UpdateFromFile deep-merges the file at path into doc: values present in
// the file overwrite existing ones, keys only present in doc are kept.
func (h Handler) UpdateFromFile(doc Document, fs afero.Fs, path string) error {
	incoming, err := h.FromFile(fs, path)
	if err != nil {
		return err
	}

	dst := map[string]any(doc)

	return mergo.Merge(&dst, map[string]any(incoming), mergo.WithOverride)
}

func (Handler) DefaultFilename() string {
	return DefaultFilename
}

var _ confsearch.Handler[Document] = Handler{}
