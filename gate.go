package confsearch

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// FileReadability is the outcome of the gate check for a single candidate
// file.
type FileReadability struct {
	// Readable reports whether the file passed every check and can be merged.
	Readable bool
	// Filename is the candidate the check ran against.
	Filename string
	// Reason explains why the file is not readable. Empty when Readable.
	Reason string
	// Version is the version declared by the file, if any.
	Version *Version
}

// groupOrWorldReadable reports whether the POSIX group-read or other-read
// permission bits are set on path.
func groupOrWorldReadable(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return false, err
	}

	return info.Mode().Perm()&0o044 != 0, nil
}

// isReadable checks whether a candidate file exists, parses, satisfies the
// version expectation, and (when secure is set) is not group- or
// world-readable.
//
// Per-file problems never escape as errors: they come back as a not-readable
// result with a reason, and the lookup moves on to the next candidate. The
// single exception is a file without a version while the caller explicitly
// asked for one (requested is set): that violates the whole chain's contract
// and fails with a NoVersionError. When expected was merely locked in from a
// previous file of the chain, a versionless file is accepted as is.
func isReadable[T any](fs afero.Fs, path string, expected *Version, requested, secure bool, h Handler[T], log *zap.Logger) (FileReadability, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil || !exists {
		return FileReadability{Filename: path, Reason: "File not found"}, nil
	}

	log.Debug("checking if the file is readable", zap.String("file", path))

	doc, err := h.FromFile(fs, path)
	if err != nil {
		log.Error("unable to read the file", zap.String("file", path), zap.Error(err))

		return FileReadability{Filename: path, Reason: "Exception encountered when loading the file"}, nil
	}

	fileVersion := h.Version(doc)

	if requested && expected != nil && fileVersion == nil {
		// The caller demanded version checking, a file predating that
		// contract cannot be skipped silently. When the expectation came
		// from a lock-in instead, a versionless file cannot conflict with
		// it and goes through the remaining checks as is.
		return FileReadability{Filename: path, Version: nil}, NewNoVersionError(path, *expected)
	}

	readable := true
	reason := ""
	if expected != nil && fileVersion != nil {
		switch {
		case !expected.SameMajor(*fileVersion):
			reason = fmt.Sprintf("Invalid major version number: expected %s, got %s", expected, fileVersion)
			log.Error("invalid major version number",
				zap.String("file", path),
				zap.Stringer("expected", expected),
				zap.Stringer("got", fileVersion))
			readable = false
		case fileVersion.CompareMinor(*expected) < 0:
			reason = fmt.Sprintf("Mismatching minor version number: expected %s, got %s", expected, fileVersion)
			log.Warn("mismatching minor version number",
				zap.String("file", path),
				zap.Stringer("expected", expected),
				zap.Stringer("got", fileVersion))
			readable = false
		case fileVersion.CompareMinor(*expected) > 0:
			// A newer minor version is assumed to be backwards compatible.
			log.Warn("config file is newer than expected",
				zap.String("file", path),
				zap.Stringer("expected", expected),
				zap.Stringer("got", fileVersion))
		}
	}

	if readable && secure {
		insecure, err := groupOrWorldReadable(fs, path)
		if err != nil {
			log.Error("unable to inspect file permissions", zap.String("file", path), zap.Error(err))

			return FileReadability{Filename: path, Reason: "Exception encountered when inspecting file permissions", Version: fileVersion}, nil
		}
		if insecure {
			reason := "File is not secure enough. Change its mode to 600"
			log.Warn("insecure config file skipped", zap.String("file", path))

			return FileReadability{Filename: path, Reason: reason, Version: fileVersion}, nil
		}
	}

	return FileReadability{Readable: readable, Filename: path, Reason: reason, Version: fileVersion}, nil
}
