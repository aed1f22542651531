//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package oram

import (
	"fmt"
)

// AccessType specifies storage access types.
type AccessType int

// Storage access types.
const (
	AccessReadBucket AccessType = iota
	AccessWriteBucket
	AccessReadStash
	AccessWriteStash
)

var accessTypes = map[AccessType]string{
	AccessReadBucket:  "read",
	AccessWriteBucket: "write",
	AccessReadStash:   "read-stash",
	AccessWriteStash:  "write-stash",
}

func (t AccessType) String() string {
	name, ok := accessTypes[t]
	if ok {
		return name
	}
	return fmt.Sprintf("{AccessType %d}", int(t))
}

// Access records one storage access. The stash accesses have the
// index -1.
type Access struct {
	Type  AccessType
	Index int
}

func (a Access) String() string {
	return fmt.Sprintf("%s(%d)", a.Type, a.Index)
}

// Counter wraps a storage and records its access pattern.
type Counter struct {
	Storage
	Reads  int
	Writes int
	Log    []Access
}

// NewCounter creates a new access counter for the storage.
func NewCounter(s Storage) *Counter {
	return &Counter{
		Storage: s,
	}
}

func (c *Counter) record(t AccessType, idx int) {
	switch t {
	case AccessReadBucket, AccessReadStash:
		c.Reads++
	default:
		c.Writes++
	}
	c.Log = append(c.Log, Access{
		Type:  t,
		Index: idx,
	})
}

// Reset clears the counters and the access log.
func (c *Counter) Reset() {
	c.Reads = 0
	c.Writes = 0
	c.Log = nil
}

// ReadBucket implements Storage.ReadBucket.
func (c *Counter) ReadBucket(idx int) []Entry {
	c.record(AccessReadBucket, idx)
	return c.Storage.ReadBucket(idx)
}

// WriteBucket implements Storage.WriteBucket.
func (c *Counter) WriteBucket(idx int, entries []Entry) {
	c.record(AccessWriteBucket, idx)
	c.Storage.WriteBucket(idx, entries)
}

// ReadStash implements Storage.ReadStash.
func (c *Counter) ReadStash() []Entry {
	c.record(AccessReadStash, -1)
	return c.Storage.ReadStash()
}

// WriteStash implements Storage.WriteStash.
func (c *Counter) WriteStash(entries []Entry) {
	c.record(AccessWriteStash, -1)
	c.Storage.WriteStash(entries)
}

// Equal tests if the access logs of the counters are equal.
func (c *Counter) Equal(o *Counter) bool {
	if len(c.Log) != len(o.Log) {
		return false
	}
	for i, a := range c.Log {
		if a != o.Log[i] {
			return false
		}
	}
	return true
}
