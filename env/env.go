//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package env implements global environment for the oblivious data
// structures.
package env

import (
	"crypto/rand"
	"io"
)

// Config defines the global system configuration. Config must not be
// modified after being passed to any module. It is safe for
// concurrent use by multiple modules as they do not modify it.
type Config struct {
	Rand io.Reader
}

// GetRandom returns the source of entropy for seeding the secret
// random generators.
func (config *Config) GetRandom() io.Reader {
	if config != nil && config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}
