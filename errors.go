package confsearch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedVersion = errors.New("malformed version")
	ErrNoVersion        = errors.New("missing config version")
	ErrConfigNotFound   = errors.New("no config file found")
)

// MalformedVersionError reports a version string that is not of the
// <major>.<minor> form.
type MalformedVersionError struct {
	Value string
}

func (e *MalformedVersionError) Error() string {
	return fmt.Sprintf("version '%s' is not of the form <major>.<minor>", e.Value)
}

func (e *MalformedVersionError) Unwrap() error {
	return ErrMalformedVersion
}

// NoVersionError reports a config file without a meta.version value while the
// lookup expects one. It aborts the whole lookup chain.
type NoVersionError struct {
	Filename string
	Expected Version
}

func (e *NoVersionError) Error() string {
	return fmt.Sprintf("the config option 'meta.version' is missing in %s, the application expects version %s", e.Filename, e.Expected)
}

func (e *NoVersionError) Unwrap() error {
	return ErrNoVersion
}

// ConfigNotFoundError reports that no file was loaded although the lookup was
// performed with the RequireLoad option.
type ConfigNotFoundError struct {
	Filename   string
	SearchPath []string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("no config file named %s found, the search path was [%s]", e.Filename, strings.Join(e.SearchPath, ", "))
}

func (e *ConfigNotFoundError) Unwrap() error {
	return ErrConfigNotFound
}

func NewMalformedVersionError(value string) error {
	return &MalformedVersionError{
		Value: value,
	}
}

func NewNoVersionError(filename string, expected Version) error {
	return &NoVersionError{
		Filename: filename,
		Expected: expected,
	}
}

func NewConfigNotFoundError(filename string, searchPath []string) error {
	return &ConfigNotFoundError{
		Filename:   filename,
		SearchPath: searchPath,
	}
}
