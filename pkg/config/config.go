package config

import (
	"strings"

	"github.com/arthur-debert/modlink/pkg/ignore"
	"github.com/pelletier/go-toml/v2"
)

// Config is the typed view of the merged configuration
type Config struct {
	Link      LinkConfig      `koanf:"link" toml:"link"`
	Unlink    UnlinkConfig    `koanf:"unlink" toml:"unlink"`
	Ignore    IgnoreConfig    `koanf:"ignore" toml:"ignore"`
	Framework FrameworkConfig `koanf:"framework" toml:"framework"`
}

// LinkConfig holds settings for linking
type LinkConfig struct {
	BackupSuffix string `koanf:"backup_suffix" toml:"backup_suffix"`
	CreateDirs   bool   `koanf:"create_dirs" toml:"create_dirs"`
}

// UnlinkConfig holds settings for unlinking
type UnlinkConfig struct {
	RestoreBackups bool `koanf:"restore_backups" toml:"restore_backups"`
}

// IgnoreConfig lists version-control metadata to skip
type IgnoreConfig struct {
	Dirs  []string `koanf:"dirs" toml:"dirs"`
	Files []string `koanf:"files" toml:"files"`
}

// FrameworkConfig controls framework root detection
type FrameworkConfig struct {
	Check   bool     `koanf:"check" toml:"check"`
	Markers []string `koanf:"markers" toml:"markers"`
}

// Matcher builds the ignore matcher described by the configuration.
// Entries of Files are "<parent>/<name>"; a bare name or "*/<name>" applies
// in every directory and "./<name>" only at the module root.
func (c *Config) Matcher() *ignore.Matcher {
	files := make(map[string][]string)
	for _, f := range c.Ignore.Files {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		parent, name := "*", f
		if i := strings.LastIndex(f, "/"); i >= 0 {
			parent, name = f[:i], f[i+1:]
		}
		files[parent] = append(files[parent], name)
	}
	return ignore.New(c.Ignore.Dirs, files)
}

// TOML renders the configuration in the format of the config files
func (c *Config) TOML() ([]byte, error) {
	return toml.Marshal(c)
}
