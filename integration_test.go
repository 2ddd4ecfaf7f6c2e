package confsearch_test

import (
	"errors"
	"os"
	"strings"

	"github.com/leodido/confsearch"
	inihandler "github.com/leodido/confsearch/handler/ini"
	jsonhandler "github.com/leodido/confsearch/handler/json"
)

func listSep(dirs ...string) string {
	return strings.Join(dirs, string(os.PathListSeparator))
}

func (suite *confsearchSuite) options(dirs ...string) confsearch.Options {
	return confsearch.Options{
		SearchPath:  listSep(dirs...),
		Fs:          suite.fs,
		Environment: map[string]string{},
	}
}

func (suite *confsearchSuite) TestIncrementalIniLoad() {
	suite.write("cfg1/app.ini", "[section]\nx = 1\n", 0o644)
	suite.write("cfg2/app.ini", "[section]\nx = 2\ny = 3\n", 0o644)

	res, err := confsearch.Get("bird", "acme", suite.options("cfg1", "cfg2"), inihandler.New())
	suite.Require().NoError(err)

	section := res.Config.File().Section("section")
	suite.Equal("2", section.Key("x").String())
	suite.Equal("3", section.Key("y").String())
	suite.Equal([]string{"cfg1/app.ini", "cfg2/app.ini"}, res.Meta.LoadedFiles)
	suite.Equal([]string{"cfg1/app.ini", "cfg2/app.ini"}, res.Meta.ActivePath)
	suite.Equal(confsearch.ConfigID{Group: "acme", App: "bird"}, res.Meta.ConfigID)
}

func (suite *confsearchSuite) TestIncrementalJSONLoad() {
	suite.write("cfg1/app.json", `{"section": {"x": "1", "z": "9"}}`, 0o644)
	suite.write("cfg2/app.json", `{"section": {"x": "2", "y": "3"}}`, 0o644)

	res, err := confsearch.Get("bird", "acme", suite.options("cfg1", "cfg2"), jsonhandler.New())
	suite.Require().NoError(err)

	section, ok := res.Config["section"].(map[string]any)
	suite.Require().True(ok)
	suite.Equal("2", section["x"])
	suite.Equal("3", section["y"])
	suite.Equal("9", section["z"])
}

func (suite *confsearchSuite) TestDecodeLoadedIniDocument() {
	suite.write("cfg/app.ini", "[server]\nhost = localhost\nport = 8080\n", 0o644)

	res, err := confsearch.Get("bird", "acme", suite.options("cfg"), inihandler.New())
	suite.Require().NoError(err)

	settings := struct {
		Server struct {
			Host string
			Port int
		}
	}{}
	suite.Require().NoError(confsearch.Decode(res.Config, &settings))

	suite.Equal("localhost", settings.Server.Host)
	suite.Equal(8080, settings.Server.Port)
}

func (suite *confsearchSuite) TestVersionLockInAcrossJSONFiles() {
	suite.write("cfg1/app.json", `{"meta": {"version": "1.2"}, "x": "1"}`, 0o644)
	suite.write("cfg2/app.json", `{"meta": {"version": "2.0"}, "x": "2"}`, 0o644)

	res, err := confsearch.Get("bird", "acme", suite.options("cfg1", "cfg2"), jsonhandler.New())
	suite.Require().NoError(err)

	// 1.2 got locked in from the first file, so the 2.0 one is skipped.
	suite.Equal([]string{"cfg1/app.json"}, res.Meta.LoadedFiles)
	suite.Equal("1", res.Config["x"])
}

func (suite *confsearchSuite) TestSecureLookupSkipsWorldReadableIni() {
	suite.write("cfg/app.ini", "[section]\nx = 1\n", 0o644)

	opts := suite.options("cfg")
	opts.Secure = true

	res, err := confsearch.Get("bird", "acme", opts, inihandler.New())
	suite.Require().NoError(err)
	suite.Empty(res.Meta.LoadedFiles)

	// Restricting the mode to the owner makes the same file acceptable.
	suite.Require().NoError(suite.fs.Chmod("cfg/app.ini", 0o600))

	res, err = confsearch.Get("bird", "acme", opts, inihandler.New())
	suite.Require().NoError(err)
	suite.Equal([]string{"cfg/app.ini"}, res.Meta.LoadedFiles)
}

func (suite *confsearchSuite) TestRequireLoad() {
	opts := suite.options("nowhere")
	opts.RequireLoad = true

	_, err := confsearch.Get("bird", "acme", opts, inihandler.New())

	suite.Require().Error(err)
	suite.True(errors.Is(err, confsearch.ErrConfigNotFound))

	var notFound *confsearch.ConfigNotFoundError
	suite.Require().True(errors.As(err, &notFound))
	suite.Equal("app.ini", notFound.Filename)
	suite.Equal([]string{"nowhere"}, notFound.SearchPath)
}

func (suite *confsearchSuite) TestCorruptFileInTheMiddleOfTheChain() {
	suite.write("cfg1/app.ini", "[section]\nx = 1\n", 0o644)
	suite.write("cfg2/app.ini", "[broken\n", 0o644)
	suite.write("cfg3/app.ini", "[section]\ny = 3\n", 0o644)

	res, err := confsearch.Get("bird", "acme", suite.options("cfg1", "cfg2", "cfg3"), inihandler.New())
	suite.Require().NoError(err)

	suite.Equal([]string{"cfg1/app.ini", "cfg3/app.ini"}, res.Meta.LoadedFiles)
	suite.Equal("1", res.Config.File().Section("section").Key("x").String())
	suite.Equal("3", res.Config.File().Section("section").Key("y").String())
}

func (suite *confsearchSuite) TestAdditivePathThroughTheEnvironment() {
	suite.write("base/app.ini", "[section]\nx = 1\n", 0o644)
	suite.write("extra/app.ini", "[section]\nx = 2\n", 0o644)

	opts := suite.options("base")
	opts.Environment = map[string]string{
		"ACME_BIRD_PATH": "+extra",
	}

	res, err := confsearch.Get("bird", "acme", opts, inihandler.New())
	suite.Require().NoError(err)

	suite.Equal([]string{"base/app.ini", "extra/app.ini"}, res.Meta.LoadedFiles)
	suite.Equal("2", res.Config.File().Section("section").Key("x").String())
}

func (suite *confsearchSuite) TestFilenameThroughTheEnvironment() {
	suite.write("cfg/custom.ini", "[section]\nx = 42\n", 0o644)

	opts := suite.options("cfg")
	opts.Environment = map[string]string{
		"ACME_BIRD_FILENAME": "custom.ini",
	}

	res, err := confsearch.Get("bird", "acme", opts, inihandler.New())
	suite.Require().NoError(err)

	suite.Equal([]string{"cfg/custom.ini"}, res.Meta.LoadedFiles)
	suite.Equal("42", res.Config.File().Section("section").Key("x").String())
}

func (suite *confsearchSuite) TestFromStringIni() {
	res, err := confsearch.FromString("[section_mem]\nval = 1\n", inihandler.New())
	suite.Require().NoError(err)

	suite.Equal("1", res.Config.File().Section("section_mem").Key("val").String())
	suite.Equal([]string{confsearch.Unknown}, res.Meta.LoadedFiles)
	suite.Equal(confsearch.Unknown, res.Meta.ConfigID.App)
}
