package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/callsecure/internal/flagx"
	"github.com/dmitrijs2005/callsecure/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// SuccessDelay relies on timex.Duration so JSON can specify it either as a
// string like "2s" or as integer nanoseconds.
type JsonConfig struct {
	StorageDriver string          `json:"storage_driver"`
	DatabaseDSN   string          `json:"database_dsn"`
	DataDir       string          `json:"data_dir"`
	SuccessDelay  *timex.Duration `json:"success_delay"`
	LogLevel      string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from -c or -config; without one nothing is loaded.
// Keys missing from the file keep their current value. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath(os.Args[1:])
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

	if jc.StorageDriver != "" {
		cfg.StorageDriver = jc.StorageDriver
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.SuccessDelay != nil {
		cfg.SuccessDelay = jc.SuccessDelay.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
