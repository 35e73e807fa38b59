// Package config loads the YAML configuration of the prettify tool: builder
// options, session cache bounds, indent width and log level.
package config
