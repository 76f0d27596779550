// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] can be used to
// locate the snapshot. Redis inputs are not validated: an empty gate value is
// a legitimate trigger.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.Storage.EnvFile) == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
