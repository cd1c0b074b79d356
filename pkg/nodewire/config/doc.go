/*
Package config provides configuration loading for nodewire hosts.

# Overview

config wraps a map[string]any and provides typed accessor methods that
handle missing keys and type mismatches gracefully by returning default
values. SettingsFrom turns a loaded Config into the concrete Settings a
host editor needs for its link networks.

# Basic Usage

Create a Config from any map and extract values with defaults:

	cfg := config.New(map[string]any{
	    "graph_id":         "patch-01",
	    "metrics_enabled":  true,
	    "autosave_interval": "30s",
	})

	settings := config.SettingsFrom(cfg)

# File Loading

Load configuration from YAML or JSON files:

	cfg, err := config.FromFile("nodewire.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	settings := config.SettingsFrom(cfg)

or go straight from file to settings:

	settings, err := config.LoadSettings("nodewire.yaml")

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation. However, if the original map is modified
externally, behavior is undefined.
*/
package config
