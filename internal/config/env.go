// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Gate variables. Their presence, not their value, enables a settings group.
const (
	DefaultCacheServerEnv = "DEFAULT_CACHE_REDIS_SERVER"
	PageCacheServerEnv    = "PAGE_CACHE_REDIS_SERVER"
	SessionServerEnv      = "SESSION_REDIS_SERVER"
)

// parseEnv populates cfg from environ (os.Environ format) using the
// caarlos0/env library. Struct fields are mapped via their `env`, `envPrefix`
// and `envDefault` tags defined on [StructuredConfig] and its nested types.
//
// env only reports non-empty values, so presence is resolved separately from
// the same map: a gate set to the empty string still enables its group, and a
// redis field set to the empty string stays empty instead of taking its
// envDefault.
//
// Returns a wrapped error if env.ParseWithOptions fails.
func parseEnv(cfg *StructuredConfig, environ []string) error {
	vars := env.ToMap(environ)

	err := env.ParseWithOptions(cfg, env.Options{Environment: vars})
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	cfg.Redis.DefaultCache.Server = lookupGate(vars, DefaultCacheServerEnv)
	cfg.Redis.PageCache.Server = lookupGate(vars, PageCacheServerEnv)
	cfg.Redis.Session.Server = lookupGate(vars, SessionServerEnv)

	keepPresentEmpty(reflect.ValueOf(&cfg.Redis).Elem(), "", vars)

	return nil
}

func lookupGate(vars map[string]string, key string) *string {
	v, ok := vars[key]
	if !ok {
		return nil
	}
	return &v
}

// keepPresentEmpty walks v following the env and envPrefix tags and clears
// every string field whose variable is present in vars with an empty value.
func keepPresentEmpty(v reflect.Value, prefix string, vars map[string]string) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)

		if field.Type.Kind() == reflect.Struct {
			keepPresentEmpty(value, prefix+field.Tag.Get("envPrefix"), vars)
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if name == "" || field.Type.Kind() != reflect.String {
			continue
		}
		if raw, ok := vars[prefix+name]; ok && raw == "" {
			value.SetString("")
		}
	}
}
