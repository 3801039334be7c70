// Package config provides the configuration system for cellpanel.
//
// # Architecture
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← CELLPANEL_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← -config cellpanel.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Each layer is a nested map held by a layer.Manager. Every setting is
// registered with its type, default and rules in a registry.Registry;
// the registry.Accessor reads the merged layers into a typed Config,
// converting environment strings to each setting's type, and the
// registry validates the result.
//
// # Sub-packages
//
//   - layer: priority-ordered layers, merging and per-setting origin
//   - registry: setting definitions, typed access and validation
//   - loader: TOML files and environment variables
//   - watcher: fsnotify-based file watching for live reload
//
// # Example file
//
//	[grid]
//	columns = 80
//	rows = 24
//
//	[colors]
//	foreground = "#ff80c4"
//	background = "#173659"
//	attributes = "bold"
//
//	[scene]
//	path = "hud.toml"
//	watch = true
//
//	[script]
//	path = "hud.lua"
//	timeout = "250ms"
package config
