// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// The built-in defaults carry the published MTA endpoints, so the pipeline
// works with no config file at all; a file overrides the defaults. Realtime
// endpoints are organized as feed groups (one endpoint serving several
// related lines) selectable by label.
package config
