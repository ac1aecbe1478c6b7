// Package config provides configuration management for tapmusic-cli.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Conversion to tapmusic.Options for request building
//
// Settings are only read from a file that is named explicitly; nothing is
// picked up from the environment.
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Saves into the current directory
//	// Captions on, playcounts off
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/tapmusic.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.DownloadsPath = "/home/alice/Pictures"
//	err := settings.Save("/path/to/tapmusic.json")
package config
