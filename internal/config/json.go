package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// parseJSON reads a JSON overrides file shaped like [StructuredConfig]:
//
//	{
//	  "storage": {"env_file": "app/etc/env.php"},
//	  "redis": {
//	    "default_cache": {"server": "redis", "port": "6380"},
//	    "page_cache": {"server": "redis"},
//	    "session": {"server": "redis", "password": "secret"}
//	  }
//	}
//
// A "server" key present in a group enables that group exactly like the
// corresponding gate variable does; fields left out keep the values of the
// earlier layers.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	decoder := json.NewDecoder(jsonFile)
	decoder.DisallowUnknownFields()

	var jsonCfg StructuredConfig
	if err := decoder.Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}
	jsonCfg.JSONFilePath = ""

	return &jsonCfg, nil
}
