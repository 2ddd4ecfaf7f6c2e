package confsearch

import (
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Unknown is the placeholder used in metadata fields of results that did not
// go through path resolution (see FromString).
const Unknown = "<unknown>"

// ConfigID identifies a logical application by group and app name.
//
// It determines both the default search directories
// (eg. /etc/<group>/<app>) and the names of the override environment
// variables (<GROUP>_<APP>_PATH, <GROUP>_<APP>_FILENAME).
type ConfigID struct {
	Group string
	App   string
}

// Options controls a single configuration lookup. The zero value asks for
// the default behavior of every knob.
type Options struct {
	// SearchPath replaces the default search directories entirely. Multiple
	// folders are separated with the OS path-list separator.
	SearchPath string

	// Filename overrides the handler's default config file name.
	Filename string

	// RequireLoad makes Get fail with a ConfigNotFoundError when no file at
	// all could be loaded.
	RequireLoad bool

	// Version requests "<major>.<minor>" version checking on every candidate
	// file. Leave empty to disable checking; note that the first version
	// found in a file is then locked in for the rest of the chain.
	Version string

	// Secure skips files that are group- or world-readable.
	Secure bool

	// Fs is the filesystem the lookup operates on. Defaults to the host
	// filesystem.
	Fs afero.Fs

	// Environment replaces the process environment for this lookup. Nil
	// means the real environment; an empty map means no variables at all.
	Environment map[string]string
}

// LookupMetadata describes how a lookup was performed.
type LookupMetadata struct {
	// ActivePath lists every candidate file that was considered, in load
	// order, whether or not it was readable.
	ActivePath []string

	// LoadedFiles lists the files that were actually merged, in load order.
	// Empty when no file was found.
	LoadedFiles []string

	// ConfigID is the identity the lookup ran for.
	ConfigID ConfigID
}

// LookupResult couples the loaded document with the metadata of the lookup
// that produced it. The document is exclusively owned by the caller.
type LookupResult[T any] struct {
	Config T
	Meta   LookupMetadata
}

// Get searches the conventional locations for configuration files of the
// application identified by appName and groupName, merging every readable
// candidate into a single document produced by h.
//
// Files are loaded incrementally in search-path order: each subsequent file
// extends or overrides the values loaded so far, so the last file wins on
// conflicting keys. A missing or unreadable candidate is a normal outcome
// and simply skipped; see Options for the two contracts (RequireLoad,
// Version) whose violation makes the whole lookup fail instead.
func Get[T any](appName, groupName string, opts Options, h Handler[T]) (LookupResult[T], error) {
	id := ConfigID{Group: groupName, App: appName}
	log := loggerFor(id)

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	e, err := captureEnvironment(id, opts.Environment)
	if err != nil {
		return LookupResult[T]{}, err
	}

	var currentVersion *Version
	versionRequested := opts.Version != ""
	if versionRequested {
		v, err := ParseVersion(opts.Version)
		if err != nil {
			return LookupResult[T]{}, err
		}
		currentVersion = &v
	}

	filename := effectiveFilename(id, e, opts.Filename, h.DefaultFilename(), log)
	searchPath := effectivePath(id, e, opts.SearchPath, log)

	// Record every inspected candidate, readable or not.
	activePath := make([]string, 0, len(searchPath))
	for _, dir := range searchPath {
		activePath = append(activePath, filepath.Join(dir, filename))
	}

	output := h.Empty()
	loadedFiles := []string{}

	for _, candidate := range activePath {
		readability, err := isReadable(fs, candidate, currentVersion, versionRequested, opts.Secure, h, log)
		if err != nil {
			return LookupResult[T]{}, err
		}

		if currentVersion == nil && readability.Version != nil {
			// Lock in the first version we come across so the rest of the
			// chain cannot silently mix incompatible files.
			log.Info("locking in the version found in the config file",
				zap.String("file", candidate),
				zap.Stringer("version", readability.Version))
			currentVersion = readability.Version
		}

		if !readability.Readable {
			log.Debug("skipping unreadable file",
				zap.String("file", candidate),
				zap.String("reason", readability.Reason))

			continue
		}

		action := "loading initial config"
		if len(loadedFiles) > 0 {
			action = "updating config"
		}
		log.Info(action, zap.String("file", candidate))

		if err := h.UpdateFromFile(output, fs, candidate); err != nil {
			log.Error("unable to merge the file", zap.String("file", candidate), zap.Error(err))

			continue
		}
		loadedFiles = append(loadedFiles, candidate)
	}

	if len(loadedFiles) == 0 {
		if opts.RequireLoad {
			return LookupResult[T]{}, NewConfigNotFoundError(filename, searchPath)
		}
		log.Warn("no config file found",
			zap.String("filename", filename),
			zap.Strings("path", searchPath))
	}

	return LookupResult[T]{
		Config: output,
		Meta: LookupMetadata{
			ActivePath:  activePath,
			LoadedFiles: loadedFiles,
			ConfigID:    id,
		},
	}, nil
}

// FromString parses data as a single document, bypassing path resolution
// entirely. Useful for tests and embedded defaults.
//
// The metadata fields of the result carry the Unknown placeholder. No
// version checking is performed.
func FromString[T any](data string, h Handler[T]) (LookupResult[T], error) {
	doc, err := h.FromString(data)
	if err != nil {
		return LookupResult[T]{}, err
	}

	return LookupResult[T]{
		Config: doc,
		Meta: LookupMetadata{
			ActivePath:  []string{Unknown},
			LoadedFiles: []string{Unknown},
			ConfigID:    ConfigID{Group: Unknown, App: Unknown},
		},
	}, nil
}
