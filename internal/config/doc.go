// Package config provides configuration structures and utilities for leadfinder.
// It defines the search, analysis and output settings, the optional YAML
// configuration file, and the API credentials read from the environment.
package config
