package confsearch

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// xdgDirs returns the system-wide candidate directories dictated by the
// XDG_CONFIG_DIRS variable, or the XDG default when it is unset.
//
// The result is sorted by precedence with the most important directory
// coming last, which is what the incremental load order requires: the first
// entry of XDG_CONFIG_DIRS is defined by the XDG spec as the most important
// one.
func xdgDirs(id ConfigID, e environment, log *zap.Logger) []string {
	if e.xdg.ConfigDirs == "" {
		return []string{filepath.Join("/etc/xdg", id.Group, id.App)}
	}

	log.Debug("XDG_CONFIG_DIRS is set", zap.String("value", e.xdg.ConfigDirs))

	dirs := strings.Split(e.xdg.ConfigDirs, ":")
	out := make([]string, 0, len(dirs))
	for i := len(dirs) - 1; i >= 0; i-- {
		out = append(out, filepath.Join(dirs[i], id.Group, id.App))
	}

	return out
}

// xdgHome returns the per-user candidate directory dictated by the
// XDG_CONFIG_HOME variable, or ~/.config when it is unset.
func xdgHome(id ConfigID, e environment, log *zap.Logger) string {
	if e.xdg.ConfigHome != "" {
		log.Debug("XDG_CONFIG_HOME is set", zap.String("value", e.xdg.ConfigHome))

		return filepath.Join(e.xdg.ConfigHome, id.Group, id.App)
	}

	home, _ := os.UserHomeDir()

	return filepath.Join(home, ".config", id.Group, id.App)
}

// defaultPath returns the conventional search directories for id, in order
// of increasing precedence: system-wide, XDG dirs, XDG home, working
// directory.
func defaultPath(id ConfigID, e environment, log *zap.Logger) []string {
	path := []string{filepath.Join("/etc", id.Group, id.App)}
	path = append(path, xdgDirs(id, e, log)...)
	path = append(path, xdgHome(id, e, log))
	if cwd, _ := os.Getwd(); cwd != "" {
		path = append(path, filepath.Join(cwd, "."+id.Group, id.App))
	}

	return path
}

// effectivePath computes the ordered list of directories to search, in order
// of increasing precedence: files found in later directories override values
// from earlier ones.
//
// A non-empty searchPath (OS path-list separated) replaces the default
// directories entirely. The <GROUP>_<APP>_PATH environment variable is
// applied last: it also replaces whatever was computed before, unless its
// value starts with "+", in which case the remainder is appended so end
// users can extend the lookup chain without repeating the defaults.
func effectivePath(id ConfigID, e environment, searchPath string, log *zap.Logger) []string {
	path := defaultPath(id, e, log)

	if searchPath != "" {
		path = filepath.SplitList(searchPath)
	}

	envPath := e.id.Path
	switch {
	case strings.HasPrefix(envPath, "+"):
		extra := filepath.SplitList(envPath[1:])
		log.Info("search path extended through the environment",
			zap.String("var", id.PathVar()),
			zap.Strings("extra", extra))
		path = append(path, extra...)
	case envPath != "":
		log.Info("search path overridden through the environment",
			zap.String("var", id.PathVar()),
			zap.String("value", envPath))
		path = filepath.SplitList(envPath)
	}

	return path
}

// effectiveFilename computes the file name to look for in each candidate
// directory: the caller's explicit filename (or the handler default when
// empty), overridden by the <GROUP>_<APP>_FILENAME environment variable.
func effectiveFilename(id ConfigID, e environment, filename, handlerDefault string, log *zap.Logger) string {
	out := filename
	if out == "" {
		out = handlerDefault
	}

	if e.id.Filename != "" {
		log.Info("config filename overridden through the environment",
			zap.String("var", id.FilenameVar()),
			zap.String("value", e.id.Filename))
		out = e.id.Filename
	}

	return out
}
