// Package config loads kev configuration from local and global YAML files
// with precedence rules. It is internal; CLI code maps flags and files into
// store options.
package config
