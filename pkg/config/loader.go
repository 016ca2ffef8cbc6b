package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modlink/pkg/logging"
	"github.com/arthur-debert/modlink/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	merrors "github.com/arthur-debert/modlink/pkg/errors"
)

// EnvPrefix is the prefix of configuration environment variables
const EnvPrefix = "MODLINK_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultsContent returns the embedded default configuration file
func DefaultsContent() string {
	return string(defaultConfig)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions selects the optional configuration sources
type LoadOptions struct {
	// ModuleDir is searched for .modlink.toml when set
	ModuleDir string
	// UserConfigPath defaults to paths.UserConfigPath()
	UserConfigPath string
	// Overrides are dotted keys applied last, e.g. "link.create_dirs"
	Overrides map[string]interface{}
}

// Load merges all configuration sources
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, merrors.Wrap(err, merrors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = paths.UserConfigPath()
	}
	if err := loadFileIfExists(k, userPath); err != nil {
		return nil, err
	}

	// 3. Module config
	if opts.ModuleDir != "" {
		if err := loadFileIfExists(k, filepath.Join(opts.ModuleDir, paths.ModuleConfigFile)); err != nil {
			return nil, err
		}
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, merrors.Wrap(err, merrors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, merrors.Wrap(err, merrors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, merrors.Wrap(err, merrors.ErrConfigParse, "failed to decode configuration")
	}

	logger.Debug().
		Str("userConfig", userPath).
		Str("moduleDir", opts.ModuleDir).
		Msg("Configuration loaded")

	return &cfg, nil
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return merrors.Wrapf(err, merrors.ErrConfigLoad, "cannot access config file %s", path).WithDetail("path", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return merrors.Wrapf(err, merrors.ErrConfigParse, "failed to load config from %s", path).WithDetail("path", path)
	}
	return nil
}

// envKey maps MODLINK_LINK_BACKUP_SUFFIX to link.backup_suffix. Only the
// first underscore separates the section; variables without one, and the
// path overrides handled by pkg/paths, are ignored.
func envKey(s string) string {
	switch s {
	case paths.EnvConfigDir, paths.EnvStateDir:
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok || section == "" || rest == "" {
		return ""
	}
	return section + "." + rest
}
