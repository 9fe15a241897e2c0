package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ComedicChimera/olive"

	"github.com/funvibe/glslsym/internal/config"
	"github.com/funvibe/glslsym/internal/export"
	"github.com/funvibe/glslsym/internal/logging"
	"github.com/funvibe/glslsym/internal/manifest"
	"github.com/funvibe/glslsym/internal/session"
)

// Version is the glslsym release.
// Can be set at build time using: -ldflags "-X main.Version=..."
var Version = "0.4.0"

var profileChoices = []string{manifest.ProfileNone, config.ProfileCore, config.ProfileCompatibility, config.ProfileES}

func main() {
	os.Exit(execute(os.Args, os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	cli := olive.NewCLI("glslsym", "glslsym inspects the built-in symbol tables of GLSL environments", true)
	cli.AddSelectorArg("loglevel", "ll", "the log level (default from the settings file, else warn)", false, []string{"silent", "error", "warn", "verbose"})
	cli.AddStringArg("config", "c", "the settings file (default "+config.SettingsFileName+")", false)
	cli.AddStringArg("manifest", "m", "a built-in manifest replacing the embedded one", false)

	dumpCmd := cli.AddSubcommand("dump", "print every level of an environment's symbol table", true)
	dumpCmd.AddStringArg("glsl-version", "gv", "the GLSL version, e.g. 110 or 300", false)
	dumpCmd.AddSelectorArg("profile", "p", "the GLSL profile", false, profileChoices)
	dumpCmd.AddSelectorArg("stage", "s", "the shader stage; omit for the common level only", false, config.Stages)

	lookupCmd := cli.AddSubcommand("lookup", "resolve a name in an environment", true)
	lookupCmd.AddPrimaryArg("name", "a variable name, function name or mangled function key", true)
	lookupCmd.AddStringArg("glsl-version", "gv", "the GLSL version, e.g. 110 or 300", false)
	lookupCmd.AddSelectorArg("profile", "p", "the GLSL profile", false, profileChoices)
	lookupCmd.AddSelectorArg("stage", "s", "the shader stage", false, config.Stages)

	exportCmd := cli.AddSubcommand("export", "write a machine-readable snapshot of an environment", true)
	exportCmd.AddStringArg("glsl-version", "gv", "the GLSL version, e.g. 110 or 300", false)
	exportCmd.AddSelectorArg("profile", "p", "the GLSL profile", false, profileChoices)
	exportCmd.AddSelectorArg("stage", "s", "the shader stage", false, config.Stages)
	formatArg := exportCmd.AddSelectorArg("format", "f", "the snapshot encoding", false, export.Formats)
	formatArg.SetDefaultValue(string(export.FormatJSON))
	exportCmd.AddStringArg("output", "o", "the output file (default stdout)", false)

	cli.AddSubcommand("version", "print the glslsym version", false)

	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		logging.New(stderr, logging.LevelError).Errorf("usage: %v", err)
		return 2
	}

	subcmdName, subResult, _ := result.Subcommand()
	if subcmdName == "version" {
		fmt.Fprintln(stdout, "glslsym", Version)
		return 0
	}

	settingsPath := config.SettingsFileName
	if path, ok := stringArg(result, "config"); ok {
		settingsPath = path
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		logging.New(stderr, logging.LevelError).Errorf("%v", err)
		return 1
	}
	applyGlobalArgs(settings, result)
	level, err := logging.ParseLevel(settings.LogLevel)
	if err != nil {
		logging.New(stderr, logging.LevelError).Errorf("%s: %v", settingsPath, err)
		return 1
	}
	logger := logging.New(stderr, level)

	if subResult == nil {
		logger.Errorf("no command given: use dump, lookup, export or version")
		return 2
	}
	env, err := environment(settings, subResult)
	if err != nil {
		logger.Errorf("%v", err)
		return 2
	}
	s, err := newSession(settings, logger)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}

	switch subcmdName {
	case "dump":
		err = dumpCommand(stdout, s, env)
	case "lookup":
		name, _ := subResult.PrimaryArg()
		err = lookupCommand(stdout, s, env, name)
	case "export":
		format, _ := stringArg(subResult, "format")
		output, _ := stringArg(subResult, "output")
		err = exportCommand(stdout, s, env, export.Format(format), output)
	}
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	return 0
}

// applyGlobalArgs overrides the settings with the global arguments that were
// given on the command line.
func applyGlobalArgs(settings *config.Settings, result *olive.ArgParseResult) {
	if path, ok := stringArg(result, "manifest"); ok {
		settings.Manifest = path
	}
	if level, ok := stringArg(result, "loglevel"); ok {
		settings.LogLevel = level
	}
}

func stringArg(result *olive.ArgParseResult, name string) (string, bool) {
	v, ok := result.Arguments[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// environment applies the subcommand's environment arguments over the settings.
func environment(settings *config.Settings, result *olive.ArgParseResult) (config.Environment, error) {
	env := settings.Env()
	if v, ok := stringArg(result, "glsl-version"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return env, fmt.Errorf("bad GLSL version %q", v)
		}
		env.Version = n
	}
	if p, ok := stringArg(result, "profile"); ok {
		if p == manifest.ProfileNone {
			p = config.ProfileNone
		}
		env.Profile = p
	}
	if s, ok := stringArg(result, "stage"); ok {
		env.Stage = s
	}
	return env, env.Validate()
}

func newSession(settings *config.Settings, logger *logging.Logger) (*session.Session, error) {
	m := manifest.Default()
	if settings.Manifest != "" {
		loaded, err := manifest.Load(settings.Manifest)
		if err != nil {
			return nil, err
		}
		m = loaded
	}
	return session.New(m, session.WithLogger(logger)), nil
}
