package confsearch

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// environment is a snapshot of every environment variable the lookup honors.
//
// It is captured once at the start of a resolution so the whole lookup runs
// against a single, consistent view of the process environment.
type environment struct {
	xdg xdgEnv
	id  idEnv
}

// xdgEnv maps the XDG base directory variables.
type xdgEnv struct {
	ConfigDirs string `env:"XDG_CONFIG_DIRS"`
	ConfigHome string `env:"XDG_CONFIG_HOME"`
}

// idEnv maps the per-application override variables. The fields are parsed
// with the <GROUP>_<APP>_ prefix.
type idEnv struct {
	Path     string `env:"PATH"`
	Filename string `env:"FILENAME"`
}

// captureEnvironment snapshots the variables relevant to id.
//
// When vars is nil the process environment is used, otherwise vars replaces
// it entirely (useful to keep tests deterministic without touching the
// process-wide environment).
func captureEnvironment(id ConfigID, vars map[string]string) (environment, error) {
	if vars == nil {
		vars = env.ToMap(os.Environ())
	}

	out := environment{}
	if err := env.ParseWithOptions(&out.xdg, env.Options{Environment: vars}); err != nil {
		return out, err
	}
	if err := env.ParseWithOptions(&out.id, env.Options{Environment: vars, Prefix: id.envPrefix()}); err != nil {
		return out, err
	}

	return out, nil
}

func (id ConfigID) envPrefix() string {
	return strings.ToUpper(id.Group) + "_" + strings.ToUpper(id.App) + "_"
}

// PathVar returns the name of the environment variable which overrides or
// extends the search path for id.
func (id ConfigID) PathVar() string {
	return id.envPrefix() + "PATH"
}

// FilenameVar returns the name of the environment variable which overrides
// the config file name for id.
func (id ConfigID) FilenameVar() string {
	return id.envPrefix() + "FILENAME"
}
