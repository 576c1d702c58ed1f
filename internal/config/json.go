package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/dirstore/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Values
// are copied into the runtime Config after parsing; fields left empty
// in the file keep their earlier (default) values.
type JsonConfig struct {
	StorePath string `json:"store_path"`
	HashMode  string `json:"hash_mode"`
	LogLevel  string `json:"log_level"`
}

// parseJson overlays cfg with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags via
// flagx.JsonConfigFlags(); if neither is set, nothing is loaded.
// Read or unmarshal errors panic (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later
// stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
	if jc.HashMode != "" {
		cfg.HashMode = jc.HashMode
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
