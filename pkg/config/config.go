// Chain uses flags and a single config file for configuration.
// A config file is a JSON document whose leaves carry the values that can be set via flags. Leaves are named after
// their flag and may be grouped into nested objects; the grouping has no meaning other than readability.
// default.json lists every configurable flag and is the reference layout of a config file.

package config

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

var configFilePath = flag.String("config_file", "config.json", "Path to the configuration file.")

//go:embed default.json
var defaultConfig []byte

// parseConfig parses a JSON config document.
func parseConfig(configBytes []byte) (*structpb.Struct, error) {
	conf := new(structpb.Struct)
	if err := protojson.Unmarshal(configBytes, conf); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return conf, nil
}

// InitFlags initializes the flags from the config file specified by the -config_file flag.
// It should be called after defining all flags and before using them.
// Assumes config file doesn't have lists. Supports nested objects only.
func InitFlags() {
	flag.Parse()

	if *configFilePath == "" {
		slog.Info("Config file not specified. Skipping config initialization.")
		return
	}

	// Read config file.
	configFile, err := os.Open(*configFilePath)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("Config file does not exist.", "path", *configFilePath, "error", err)
		return
	}
	if err != nil { // If the config file cannot be opened, we skip loading and use default flag values.
		slog.Error("Failed to open config file.", "error", err)
		return
	}
	configBytes, err := io.ReadAll(configFile)
	if err != nil {
		slog.Error("Failed to read config file.", "error", err)
		return
	}
	_ = configFile.Close()

	// Apply configurations.
	conf, err := parseConfig(configBytes)
	if err != nil {
		slog.Error("Failed to parse config file.", "path", *configFilePath, "error", err)
		return
	}
	if err := setConfigFlags(conf); err != nil {
		slog.Error("Failed to set flags from config file.", "error", err)
		return
	}
	slog.Debug("Loaded config file.", "path", *configFilePath)
}
