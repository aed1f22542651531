//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package poh

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/markkurossi/oheap/compiler/utils"
	"github.com/markkurossi/oheap/oram"
	"github.com/markkurossi/oheap/secret"
	"github.com/markkurossi/oheap/types"
)

// ErrConfiguration is returned for invalid queue configurations.
var ErrConfiguration = errors.New("invalid configuration")

// Eviction specifies the eviction strategy.
type Eviction int

// Eviction strategies.
const (
	// Shuffle assigns target levels in one linear pass and routes
	// the entries with a sorting network.
	Shuffle Eviction = iota

	// Naive trials every entry against every path and stash slot.
	Naive
)

var evictions = map[Eviction]string{
	Shuffle: "shuffle",
	Naive:   "naive",
}

func (e Eviction) String() string {
	name, ok := evictions[e]
	if ok {
		return name
	}
	return fmt.Sprintf("{Eviction %d}", int(e))
}

// ParseEviction parses the eviction strategy name.
func ParseEviction(name string) (Eviction, error) {
	for k, v := range evictions {
		if v == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown eviction strategy: %s", name)
}

// Config defines the queue configuration. The zero values select the
// defaults.
type Config struct {
	// Capacity is the maximum number of entries in the queue.
	Capacity int

	// Security is the security parameter for the stash size. The
	// default is Capacity.
	Security int

	// TypeHiding requests that all operation types have equal
	// cost. It is not supported.
	TypeHiding bool

	// Type is the secret value type. It must match the backend
	// type.
	Type types.Info

	// EntrySize declares the bit widths of the stored priorities
	// and values. The default is 32 bits for priorities and
	// log2(Capacity) bits for values, both limited to the type
	// width minus the sign bit. Entries always compare over the full
	// signed type.
	EntrySize [2]int

	Variant    oram.Variant
	BucketSize int

	// StashSize defaults to log2(Security)^2.
	StashSize int

	Eviction Eviction

	// CountAccesses enables storage access counting.
	CountAccesses bool

	// Logger receives diagnostic messages. The default logger
	// discards all messages.
	Logger *utils.Logger
}

func log2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

func configErr(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, a...))
}

// resolve validates the configuration and applies defaults for the
// backend b. It returns the resolved configuration and the tree
// depth.
func (cfg Config) resolve(b secret.Backend) (Config, int, error) {
	if cfg.Capacity < 2 {
		return cfg, 0, configErr("capacity %d < 2", cfg.Capacity)
	}
	if cfg.Security == 0 {
		cfg.Security = cfg.Capacity
	}
	if cfg.Security < 2 {
		return cfg, 0, configErr("security %d < 2", cfg.Security)
	}
	if cfg.TypeHiding {
		return cfg, 0, configErr("type hiding security not supported")
	}

	if cfg.Type.Undefined() {
		cfg.Type = b.Type()
	}
	if !cfg.Type.Signed() {
		return cfg, 0, configErr("only signed integer types supported: %v",
			cfg.Type)
	}
	if !cfg.Type.Equal(b.Type()) {
		return cfg, 0, configErr("type %v does not match backend type %v",
			cfg.Type, b.Type())
	}
	maxBits := int(cfg.Type.Bits) - 1

	depth := log2(cfg.Capacity)
	if depth >= int(cfg.Type.Bits) {
		return cfg, 0, configErr("tree depth %d too large for %v",
			depth, cfg.Type)
	}
	if !cfg.Type.CanHold(int64(depth + 2)) {
		return cfg, 0, configErr("type %v too narrow for depth %d",
			cfg.Type, depth)
	}

	if cfg.EntrySize[0] == 0 {
		cfg.EntrySize[0] = min(32, maxBits)
	}
	if cfg.EntrySize[1] == 0 {
		cfg.EntrySize[1] = min(log2(cfg.Capacity), maxBits)
	}
	for i, size := range cfg.EntrySize {
		if size < 1 || size > maxBits {
			return cfg, 0, configErr("entry size %d: %d not in [1,%d]",
				i, size, maxBits)
		}
	}

	switch cfg.Variant {
	case oram.PathORAM, oram.CircuitORAM:
	default:
		return cfg, 0, configErr("unsupported variant %v", cfg.Variant)
	}
	if cfg.BucketSize == 0 {
		cfg.BucketSize = cfg.Variant.DefaultBucketSize()
	}
	if cfg.BucketSize < 1 {
		return cfg, 0, configErr("bucket size %d < 1", cfg.BucketSize)
	}

	if cfg.StashSize == 0 {
		l := log2(cfg.Security)
		cfg.StashSize = l * l
	}
	if cfg.StashSize < 1 {
		return cfg, 0, configErr("stash size %d < 1", cfg.StashSize)
	}

	switch cfg.Eviction {
	case Shuffle, Naive:
	default:
		return cfg, 0, configErr("unsupported eviction %v", cfg.Eviction)
	}

	if cfg.Logger == nil {
		cfg.Logger = utils.NewLogger(nil, nil)
	}

	return cfg, depth, nil
}
