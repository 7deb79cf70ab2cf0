// Package config provides user configuration for gwscan.
//
// Settings live in a YAML file that follows OS-specific conventions for its
// location. Every field is optional; anything missing falls back to the
// built-in defaults, and command-line flags override the file.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/gwscan/config.yaml or $HOME/.config/gwscan/config.yaml
//   - macOS: $HOME/.config/gwscan/config.yaml
//   - Windows: %LOCALAPPDATA%\gwscan\config.yaml
//
// # Example
//
//	version: 1
//	concurrency: 256
//	port: 80
//	connect_timeout: 3s
//	race_timeout: 3s
//	format: table
//	oui_database: /usr/share/ieee-data/oui.txt
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s := scanner.New(cfg.Scanner(), logger)
package config
