//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package emul implements a plaintext emulation backend for secret
// values. The backend evaluates every operation eagerly and counts the
// primitive operations, which makes it suitable for testing and cost
// estimation of oblivious algorithms.
package emul

import (
	"fmt"

	"github.com/markkurossi/oheap/secret"
	"github.com/markkurossi/oheap/types"
)

var (
	_ secret.Backend = &Backend{}
	_ secret.Value   = &Value{}
	_ secret.Bit     = &Bit{}
)

// Backend implements the emulation backend.
type Backend struct {
	typ      types.Info
	prg      *secret.PRG
	counters secret.Counters
}

// Value implements secret values of the emulation backend.
type Value struct {
	b *Backend
	V int64
}

// Type implements secret.Value.Type.
func (v *Value) Type() types.Info {
	return v.b.typ
}

func (v *Value) String() string {
	return fmt.Sprintf("%s(%d)", v.b.typ.ShortString(), v.V)
}

// Bit implements secret bits of the emulation backend.
type Bit struct {
	b *Backend
	V bool
}

// SecretBit implements secret.Bit.SecretBit.
func (b *Bit) SecretBit() {}

func (b *Bit) String() string {
	if b.V {
		return "b(1)"
	}
	return "b(0)"
}

// New creates a new emulation backend for the type typ. If prg is
// nil, the backend uses a randomly seeded PRG.
func New(typ types.Info, prg *secret.PRG) (*Backend, error) {
	if typ.Type != types.TInt && typ.Type != types.TUint {
		return nil, fmt.Errorf("emul: unsupported type %v", typ)
	}
	if typ.Bits < 2 || typ.Bits > types.MaxBits {
		return nil, fmt.Errorf("emul: invalid type width %v", typ)
	}
	if prg == nil {
		var err error
		prg, err = secret.NewRandomPRG(nil)
		if err != nil {
			return nil, err
		}
	}
	return &Backend{
		typ: typ,
		prg: prg,
	}, nil
}

func (be *Backend) value(v secret.Value) int64 {
	ev, ok := v.(*Value)
	if !ok || ev.b != be {
		panic(fmt.Sprintf("emul: foreign value %v", v))
	}
	return ev.V
}

func (be *Backend) bit(v secret.Bit) bool {
	eb, ok := v.(*Bit)
	if !ok || eb.b != be {
		panic(fmt.Sprintf("emul: foreign bit %v", v))
	}
	return eb.V
}

func (be *Backend) newValue(v int64) *Value {
	return &Value{
		b: be,
		V: be.typ.Truncate(v),
	}
}

func (be *Backend) newBit(v bool) *Bit {
	return &Bit{
		b: be,
		V: v,
	}
}

func (be *Backend) checkBits(bits int) {
	if bits < 0 || bits > int(be.typ.Bits) {
		panic(fmt.Sprintf("emul: invalid bit count %d for %v", bits, be.typ))
	}
}

func mask(v int64, bits int) uint64 {
	if bits >= 64 {
		return uint64(v)
	}
	return uint64(v) & (uint64(1)<<bits - 1)
}

// Type implements secret.Backend.Type.
func (be *Backend) Type() types.Info {
	return be.typ
}

// Input implements secret.Backend.Input.
func (be *Backend) Input(name string, v int64) (secret.Value, error) {
	if !be.typ.CanHold(v) {
		return nil, fmt.Errorf("input %s: value %d overflows %v",
			name, v, be.typ)
	}
	be.counters.Inc(secret.OpInput)
	return be.newValue(v), nil
}

// Int implements secret.Backend.Int.
func (be *Backend) Int(v int64) (secret.Value, error) {
	if !be.typ.CanHold(v) {
		return nil, fmt.Errorf("constant %d overflows %v", v, be.typ)
	}
	be.counters.Inc(secret.OpConst)
	return be.newValue(v), nil
}

// Const implements secret.Backend.Const.
func (be *Backend) Const(v int64) secret.Value {
	val, err := be.Int(v)
	if err != nil {
		panic(err)
	}
	return val
}

// Bool implements secret.Backend.Bool.
func (be *Backend) Bool(v bool) secret.Bit {
	return be.newBit(v)
}

// Add implements secret.Backend.Add.
func (be *Backend) Add(a, b secret.Value) secret.Value {
	be.counters.Inc(secret.OpAdd)
	return be.newValue(be.value(a) + be.value(b))
}

// Sub implements secret.Backend.Sub.
func (be *Backend) Sub(a, b secret.Value) secret.Value {
	be.counters.Inc(secret.OpSub)
	return be.newValue(be.value(a) - be.value(b))
}

// Mul implements secret.Backend.Mul.
func (be *Backend) Mul(a, b secret.Value) secret.Value {
	be.counters.Inc(secret.OpMul)
	return be.newValue(be.value(a) * be.value(b))
}

// Lt implements secret.Backend.Lt.
func (be *Backend) Lt(a, b secret.Value) secret.Bit {
	be.counters.Inc(secret.OpLt)
	if be.typ.Signed() {
		return be.newBit(be.value(a) < be.value(b))
	}
	bits := int(be.typ.Bits)
	return be.newBit(mask(be.value(a), bits) < mask(be.value(b), bits))
}

// Eq implements secret.Backend.Eq.
func (be *Backend) Eq(a, b secret.Value) secret.Bit {
	be.counters.Inc(secret.OpEq)
	return be.newBit(be.value(a) == be.value(b))
}

// LtN implements secret.Backend.LtN.
func (be *Backend) LtN(a, b secret.Value, bits int) secret.Bit {
	be.checkBits(bits)
	be.counters.Inc(secret.OpLt)
	return be.newBit(mask(be.value(a), bits) < mask(be.value(b), bits))
}

// EqN implements secret.Backend.EqN.
func (be *Backend) EqN(a, b secret.Value, bits int) secret.Bit {
	be.checkBits(bits)
	be.counters.Inc(secret.OpEq)
	return be.newBit(mask(be.value(a), bits) == mask(be.value(b), bits))
}

// Select implements secret.Backend.Select.
func (be *Backend) Select(c secret.Bit, t, f secret.Value) secret.Value {
	be.counters.Inc(secret.OpSelect)
	tv := be.value(t)
	fv := be.value(f)
	if be.bit(c) {
		return be.newValue(tv)
	}
	return be.newValue(fv)
}

// SelectBit implements secret.Backend.SelectBit.
func (be *Backend) SelectBit(c secret.Bit, t, f secret.Bit) secret.Bit {
	be.counters.Inc(secret.OpSelect)
	tv := be.bit(t)
	fv := be.bit(f)
	if be.bit(c) {
		return be.newBit(tv)
	}
	return be.newBit(fv)
}

// And implements secret.Backend.And.
func (be *Backend) And(a, b secret.Bit) secret.Bit {
	be.counters.Inc(secret.OpAnd)
	return be.newBit(be.bit(a) && be.bit(b))
}

// Or implements secret.Backend.Or.
func (be *Backend) Or(a, b secret.Bit) secret.Bit {
	be.counters.Inc(secret.OpOr)
	return be.newBit(be.bit(a) || be.bit(b))
}

// Xor implements secret.Backend.Xor.
func (be *Backend) Xor(a, b secret.Bit) secret.Bit {
	be.counters.Inc(secret.OpXor)
	return be.newBit(be.bit(a) != be.bit(b))
}

// Not implements secret.Backend.Not.
func (be *Backend) Not(a secret.Bit) secret.Bit {
	be.counters.Inc(secret.OpNot)
	return be.newBit(!be.bit(a))
}

// Bits implements secret.Backend.Bits.
func (be *Backend) Bits(v secret.Value, n int) []secret.Bit {
	be.checkBits(n)
	be.counters.Inc(secret.OpBits)
	u := uint64(be.value(v))
	result := make([]secret.Bit, n)
	for i := 0; i < n; i++ {
		result[i] = be.newBit(u&(uint64(1)<<i) != 0)
	}
	return result
}

// FromBit implements secret.Backend.FromBit.
func (be *Backend) FromBit(b secret.Bit) secret.Value {
	if be.bit(b) {
		return be.newValue(1)
	}
	return be.newValue(0)
}

// Random implements secret.Backend.Random.
func (be *Backend) Random(bits int) secret.Value {
	be.checkBits(bits)
	be.counters.Inc(secret.OpRandom)
	return be.newValue(int64(be.prg.Bits(bits)))
}

// RandomBit implements secret.Backend.RandomBit.
func (be *Backend) RandomBit() secret.Bit {
	be.counters.Inc(secret.OpRandom)
	return be.newBit(be.prg.Bits(1) != 0)
}

// Reveal implements secret.Backend.Reveal.
func (be *Backend) Reveal(v secret.Value) int64 {
	be.counters.Inc(secret.OpReveal)
	return be.value(v)
}

// RevealBit implements secret.Backend.RevealBit.
func (be *Backend) RevealBit(b secret.Bit) bool {
	be.counters.Inc(secret.OpReveal)
	return be.bit(b)
}

// Counters implements secret.Backend.Counters.
func (be *Backend) Counters() *secret.Counters {
	return &be.counters
}
