// Package config loads and persists editor settings.
//
// Settings live in a TOML file under the user config directory
// (shrimp/config.toml). A missing file yields the defaults; settings
// changed at runtime, like the theme, are written back through Save.
// The package also watches the plugin directory so .plug edits reload
// without restarting the editor.
package config
