package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// isYAMLFile reports whether path names a YAML overrides file.
func isYAMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// parseYAML reads the overrides file in YAML form. Keys match the JSON form:
//
//	storage:
//	  env_file: app/etc/env.php
//	redis:
//	  session:
//	    server: redis
//	    password: secret
//
// An explicit "server: ''" enables the group; "server: null" or a missing key
// does not.
func parseYAML(yamlFilePath string) (*StructuredConfig, error) {
	yamlFile, err := os.Open(yamlFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a yaml file: %w", err)
	}
	defer yamlFile.Close()

	decoder := yaml.NewDecoder(yamlFile)
	decoder.KnownFields(true)

	var yamlCfg StructuredConfig
	if err := decoder.Decode(&yamlCfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding yaml configs: %w", err)
	}
	yamlCfg.JSONFilePath = ""

	return &yamlCfg, nil
}
