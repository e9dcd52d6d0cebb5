// Package config manages autopush's configuration.
//
// Settings are resolved in layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (New)
//  2. The TOML config file (LoadFromFile; default location
//     ~/.config/autopush/config.toml, overridable via AUTOPUSH_CONFIG)
//  3. Environment variables with the AUTOPUSH_ prefix (LoadFromEnvironment)
//  4. Command-line flags (ParseFlags)
//
// Finalize must be called after all layers have been applied; it validates
// the result, resolves the repository path to an absolute path, and derives
// the per-repository log file location.
package config
