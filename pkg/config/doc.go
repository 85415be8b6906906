// Package config loads wrapperize configuration.
//
// Sources are layered, later ones winning: the embedded defaults, the user
// configuration file, WRAPPERIZE_* environment variables and finally command
// line overrides.
package config
