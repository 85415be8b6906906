package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/wrapperize/pkg/envvar"
	"github.com/arthur-debert/wrapperize/pkg/errors"
	"github.com/arthur-debert/wrapperize/pkg/hook"
	"github.com/arthur-debert/wrapperize/pkg/paths"
	"github.com/arthur-debert/wrapperize/pkg/script"
	"github.com/arthur-debert/wrapperize/pkg/wrapper"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes every configuration environment variable.
const EnvPrefix = "WRAPPERIZE_"

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Config is the effective wrapperize configuration.
type Config struct {
	Hooks  Hooks  `koanf:"hooks" toml:"hooks"`
	Env    Env    `koanf:"env" toml:"env"`
	Script Script `koanf:"script" toml:"script"`
	Shell  Shell  `koanf:"shell" toml:"shell"`
}

type Hooks struct {
	Dir         string `koanf:"dir" toml:"dir"`
	ProgramName string `koanf:"program_name" toml:"program_name"`
	Enabled     bool   `koanf:"enabled" toml:"enabled"`
}

type Env struct {
	NamePolicy string `koanf:"name_policy" toml:"name_policy"`
}

type Script struct {
	ValueQuoting string `koanf:"value_quoting" toml:"value_quoting"`
}

type Shell struct {
	Interpreter   []string `koanf:"interpreter" toml:"interpreter"`
	RemoveCommand string   `koanf:"remove_command" toml:"remove_command"`
}

// Options selects the sources Load reads.
type Options struct {
	// File is the user configuration file. Empty means paths.ConfigFilePath().
	File string
	// Required makes a missing File an error instead of being skipped.
	Required bool
	// Overrides are dotted keys applied last, e.g. "hooks.enabled".
	Overrides map[string]interface{}
}

// GetDefaultsContent returns the embedded defaults file.
func GetDefaultsContent() string {
	return string(defaultConfig)
}

// envKey maps WRAPPERIZE_HOOKS_DIR to hooks.dir. Variables naming the config
// file or the state directory are not configuration keys and are dropped.
func envKey(s string) string {
	switch s {
	case paths.EnvConfigFile, paths.EnvStateDir:
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Load builds the configuration from every source.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User file
	path := opts.File
	if path == "" {
		path = paths.ConfigFilePath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail(errors.DetailPath, path)
		}
	} else if opts.Required {
		return nil, errors.IO(path, err, "config file not readable")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(" "),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every value that cannot be checked by type alone.
func (c *Config) Validate() error {
	invalid := func(key, format string, args ...interface{}) error {
		return errors.Newf(errors.ErrConfigValid, "%s: "+format, append([]interface{}{key}, args...)...).
			WithDetail("key", key)
	}

	if !filepath.IsAbs(c.Hooks.Dir) {
		return invalid("hooks.dir", "must be an absolute path, got %q", c.Hooks.Dir)
	}
	if c.Hooks.ProgramName == "" || strings.ContainsAny(c.Hooks.ProgramName, "/\n") {
		return invalid("hooks.program_name", "must be a non-empty file name component, got %q", c.Hooks.ProgramName)
	}
	if _, err := envvar.ParseNamePolicy(c.Env.NamePolicy); err != nil {
		return err
	}
	if _, err := envvar.ParseQuoting(c.Script.ValueQuoting); err != nil {
		return err
	}
	if len(c.Shell.Interpreter) == 0 || c.Shell.Interpreter[0] == "" {
		return invalid("shell.interpreter", "must name a command")
	}
	for _, word := range c.Shell.Interpreter {
		if strings.ContainsAny(word, " \n") {
			return invalid("shell.interpreter", "%q cannot appear on a shebang line", word)
		}
	}
	if c.Shell.RemoveCommand == "" || strings.Contains(c.Shell.RemoveCommand, "\n") {
		return invalid("shell.remove_command", "must be a single-line command, got %q", c.Shell.RemoveCommand)
	}
	return nil
}

// NamePolicy returns the parsed env.name_policy.
func (c *Config) NamePolicy() envvar.NamePolicy {
	p, _ := envvar.ParseNamePolicy(c.Env.NamePolicy)
	return p
}

// Quoting returns the parsed script.value_quoting.
func (c *Config) Quoting() envvar.Quoting {
	q, _ := envvar.ParseQuoting(c.Script.ValueQuoting)
	return q
}

// Layout returns the hook layout.
func (c *Config) Layout() hook.Layout {
	return hook.Layout{Dir: c.Hooks.Dir, ProgramName: c.Hooks.ProgramName}
}

// Renderer returns the script renderer.
func (c *Config) Renderer() script.Renderer {
	return script.Renderer{Interpreter: c.Shell.Interpreter, Quoting: c.Quoting()}
}

// WrapperOptions returns the orchestrator options described by c.
func (c *Config) WrapperOptions() wrapper.Options {
	return wrapper.Options{
		Layout:        c.Layout(),
		RemoveCommand: c.Shell.RemoveCommand,
		UseHooks:      c.Hooks.Enabled,
		Renderer:      c.Renderer(),
	}
}

// TOML renders the configuration as a TOML document.
func (c *Config) TOML() (string, error) {
	out, err := gotoml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return string(out), nil
}
