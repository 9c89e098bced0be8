// Package config loads the application configuration from defaults, config
// files, environment variables, and CLI flags, in ascending order of
// precedence.
package config
