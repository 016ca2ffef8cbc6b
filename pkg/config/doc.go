// Package config loads modlink configuration.
//
// Sources are layered with koanf, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/modlink/config.toml
//  3. .modlink.toml at the root of the module being linked
//  4. MODLINK_<SECTION>_<KEY> environment variables
//  5. explicit overrides, usually from command line flags
//
// The merged tree is decoded into Config.
package config
