// Package scene describes widget trees as data and builds them.
//
// A scene file is a TOML or YAML document with a single root panel node.
// Nodes may carry a name; named labels and progress bars are collected in
// a Registry so scripts and the host loop can mutate them between frames.
//
// Example (TOML):
//
//	input = "prompt"
//
//	[root]
//	kind = "panel"
//	width = 20
//	height = 4
//	border = true
//
//	[[root.children]]
//	kind = "label"
//	name = "prompt"
//	x = 1
//	y = 1
//	text = "> "
package scene
