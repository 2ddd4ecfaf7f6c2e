package confsearch

import "github.com/go-viper/mapstructure/v2"

// Mappable is implemented by documents that can present themselves as a
// generic nested map for decoding purposes.
type Mappable interface {
	Map() map[string]any
}

// Decode populates target (a pointer to a struct) from a loaded document.
//
// Documents produced by the bundled handlers are either nested maps (JSON)
// or section/key maps where every value is a string (INI), so decoding is
// weakly typed: "8080" can populate an int field. Field names can be
// remapped with the `config` struct tag.
func Decode(doc any, target any) error {
	input := doc
	if m, ok := doc.(Mappable); ok {
		input = m.Map()
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "config",
	})
	if err != nil {
		return err
	}

	return dec.Decode(input)
}
