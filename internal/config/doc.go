// Package config provides configuration structures and utilities for coffmap.
//
// Configuration flows from three sources, in increasing precedence:
// built-in defaults (NewConfig), an optional YAML config file
// (LoadConfigFile, discovered by FindConfigFile), and command-line
// flags. The cmd layer merges these into a single flat Config that is
// validated once, up front, and then passed through the application by
// dependency injection rather than global state.
package config
