package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/gamevault-app/gamevault/internal/flagx"
	"github.com/gamevault-app/gamevault/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "10s" or as integer nanoseconds.
type JSONConfig struct {
	StorePath      string         `json:"store_path"`
	Backend        string         `json:"backend"`
	RemoteBaseURL  string         `json:"remote_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJSON overlays Config with values loaded from a JSON file selected via
// the -c/-config flags. Absent file path means no JSON is loaded. Only the
// fields present in the file (non-zero after unmarshal) are copied, so the
// file can be partial. Read or unmarshal errors panic; this runs once at
// startup and a broken config file should stop the program.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JSONConfig

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
	if jc.Backend != "" {
		cfg.Backend = Backend(jc.Backend)
	}
	if jc.RemoteBaseURL != "" {
		cfg.RemoteBaseURL = jc.RemoteBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
