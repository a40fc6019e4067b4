// Package config loads and validates application configuration.
//
// Configuration comes from three layers, lowest precedence first:
// built-in defaults, an optional YAML file (lc2csv.yml in the working
// directory or the path in LC_CONFIG_FILE), and LC_-prefixed
// environment variables. The merged result is validated before use.
package config
