//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package gates implements a secret value backend that emits a
// Boolean circuit. Every operation appends gates to a circuit
// builder. The backend carries a plaintext witness of every wire
// group so that Reveal can return the value the circuit would output
// for the recorded inputs; Verify evaluates the compiled circuit and
// checks it against the witness.
package gates

import (
	"fmt"
	"math/big"

	"github.com/markkurossi/oheap/circuit"
	"github.com/markkurossi/oheap/compiler/circuits"
	"github.com/markkurossi/oheap/compiler/utils"
	"github.com/markkurossi/oheap/secret"
	"github.com/markkurossi/oheap/types"
)

var (
	_ secret.Backend = &Backend{}
	_ secret.Value   = &Value{}
	_ secret.Bit     = &Bit{}
)

// Backend implements the circuit emitting backend.
type Backend struct {
	typ      types.Info
	cc       *circuits.Builder
	prg      *secret.PRG
	counters secret.Counters
	inputs   []*big.Int
	outputs  []*big.Int
}

// Value implements secret values of the circuit backend.
type Value struct {
	b     *Backend
	Wires []circuit.Wire
	v     int64
}

// Type implements secret.Value.Type.
func (v *Value) Type() types.Info {
	return v.b.typ
}

func (v *Value) String() string {
	return fmt.Sprintf("%s%v", v.b.typ.ShortString(), v.Wires)
}

// Bit implements secret bits of the circuit backend.
type Bit struct {
	b    *Backend
	Wire circuit.Wire
	v    bool
}

// SecretBit implements secret.Bit.SecretBit.
func (b *Bit) SecretBit() {}

func (b *Bit) String() string {
	return fmt.Sprintf("b{%v}", b.Wire)
}

// New creates a new circuit backend for the type typ. If prg is nil,
// the backend uses a randomly seeded PRG.
func New(typ types.Info, params *utils.Params, prg *secret.PRG) (
	*Backend, error) {

	if typ.Type != types.TInt && typ.Type != types.TUint {
		return nil, fmt.Errorf("gates: unsupported type %v", typ)
	}
	if typ.Bits < 2 || typ.Bits > types.MaxBits {
		return nil, fmt.Errorf("gates: invalid type width %v", typ)
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
		cc:  circuits.NewBuilder(params),
		prg: prg,
	}, nil
}

// Builder returns the circuit builder of the backend.
func (be *Backend) Builder() *circuits.Builder {
	return be.cc
}

// Compile compiles the circuit emitted so far.
func (be *Backend) Compile() *circuit.Circuit {
	return be.cc.Compile()
}

// Witness returns the input values of the emitted circuit in the
// order of the circuit inputs.
func (be *Backend) Witness() []*big.Int {
	result := make([]*big.Int, len(be.inputs))
	for idx, v := range be.inputs {
		result[idx] = new(big.Int).Set(v)
	}
	return result
}

// Verify evaluates the compiled circuit with the witness inputs and
// checks that the circuit outputs match the revealed values.
func (be *Backend) Verify() error {
	circ := be.Compile()
	outputs, err := circ.Compute(be.Witness())
	if err != nil {
		return err
	}
	if len(outputs) != len(be.outputs) {
		return fmt.Errorf("gates: got %d outputs, expected %d",
			len(outputs), len(be.outputs))
	}
	for idx, v := range outputs {
		if v.Cmp(be.outputs[idx]) != 0 {
			return fmt.Errorf("gates: output %s=%v, revealed %v",
				circ.Outputs[idx].Name, v, be.outputs[idx])
		}
	}
	return nil
}

func (be *Backend) bits() int {
	return int(be.typ.Bits)
}

func (be *Backend) value(v secret.Value) *Value {
	gv, ok := v.(*Value)
	if !ok || gv.b != be {
		panic(fmt.Sprintf("gates: foreign value %v", v))
	}
	return gv
}

func (be *Backend) bit(v secret.Bit) *Bit {
	gb, ok := v.(*Bit)
	if !ok || gb.b != be {
		panic(fmt.Sprintf("gates: foreign bit %v", v))
	}
	return gb
}

func (be *Backend) newValue(wires []circuit.Wire, v int64) *Value {
	if len(wires) != be.bits() {
		panic(fmt.Sprintf("gates: invalid value width %d", len(wires)))
	}
	return &Value{
		b:     be,
		Wires: wires,
		v:     be.typ.Truncate(v),
	}
}

func (be *Backend) newBit(w circuit.Wire, v bool) *Bit {
	return &Bit{
		b:    be,
		Wire: w,
		v:    v,
	}
}

func (be *Backend) checkBits(bits int) {
	if bits < 0 || bits > be.bits() {
		panic(fmt.Sprintf("gates: invalid bit count %d for %v",
			bits, be.typ))
	}
}

func (be *Backend) check(err error) {
	if err != nil {
		panic(fmt.Sprintf("gates: %v", err))
	}
}

func mask(v int64, bits int) uint64 {
	if bits >= 64 {
		return uint64(v)
	}
	return uint64(v) & (uint64(1)<<bits - 1)
}

func (be *Backend) input(name string, bits int, v uint64) []circuit.Wire {
	wires := be.cc.Input(name, fmt.Sprintf("u%d", bits), bits)
	be.inputs = append(be.inputs, new(big.Int).SetUint64(v))
	return wires
}

func (be *Backend) output(wires []circuit.Wire, v uint64) {
	be.cc.Output(fmt.Sprintf("o%d", len(be.outputs)),
		fmt.Sprintf("u%d", len(wires)), wires)
	be.outputs = append(be.outputs, new(big.Int).SetUint64(v))
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
	wires := be.input(name, be.bits(), mask(v, be.bits()))
	return be.newValue(wires, v), nil
}

// Int implements secret.Backend.Int.
func (be *Backend) Int(v int64) (secret.Value, error) {
	if !be.typ.CanHold(v) {
		return nil, fmt.Errorf("constant %d overflows %v", v, be.typ)
	}
	be.counters.Inc(secret.OpConst)
	return be.newValue(be.cc.Const(uint64(v), be.bits()), v), nil
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
	if v {
		return be.newBit(be.cc.OneWire(), true)
	}
	return be.newBit(be.cc.ZeroWire(), false)
}

// Add implements secret.Backend.Add.
func (be *Backend) Add(a, b secret.Value) secret.Value {
	be.counters.Inc(secret.OpAdd)
	x := be.value(a)
	y := be.value(b)
	wires, err := circuits.NewAdder(be.cc, x.Wires, y.Wires)
	be.check(err)
	return be.newValue(wires, x.v+y.v)
}

// Sub implements secret.Backend.Sub.
func (be *Backend) Sub(a, b secret.Value) secret.Value {
	be.counters.Inc(secret.OpSub)
	x := be.value(a)
	y := be.value(b)
	wires, err := circuits.NewSubtractor(be.cc, x.Wires, y.Wires)
	be.check(err)
	return be.newValue(wires, x.v-y.v)
}

// Mul implements secret.Backend.Mul.
func (be *Backend) Mul(a, b secret.Value) secret.Value {
	be.counters.Inc(secret.OpMul)
	x := be.value(a)
	y := be.value(b)
	wires, err := circuits.NewArrayMultiplier(be.cc, x.Wires, y.Wires)
	be.check(err)
	return be.newValue(wires, x.v*y.v)
}

// Lt implements secret.Backend.Lt.
func (be *Backend) Lt(a, b secret.Value) secret.Bit {
	x := be.value(a)
	y := be.value(b)
	if !be.typ.Signed() {
		return be.LtN(a, b, be.bits())
	}
	be.counters.Inc(secret.OpLt)
	w, err := circuits.NewSignedLtComparator(be.cc, x.Wires, y.Wires)
	be.check(err)
	return be.newBit(w, x.v < y.v)
}

// Eq implements secret.Backend.Eq.
func (be *Backend) Eq(a, b secret.Value) secret.Bit {
	return be.EqN(a, b, be.bits())
}

// LtN implements secret.Backend.LtN.
func (be *Backend) LtN(a, b secret.Value, bits int) secret.Bit {
	be.checkBits(bits)
	be.counters.Inc(secret.OpLt)
	x := be.value(a)
	y := be.value(b)
	w := circuits.NewLtComparator(be.cc, x.Wires[:bits], y.Wires[:bits])
	return be.newBit(w, mask(x.v, bits) < mask(y.v, bits))
}

// EqN implements secret.Backend.EqN.
func (be *Backend) EqN(a, b secret.Value, bits int) secret.Bit {
	be.checkBits(bits)
	be.counters.Inc(secret.OpEq)
	x := be.value(a)
	y := be.value(b)
	w := circuits.NewEqComparator(be.cc, x.Wires[:bits], y.Wires[:bits])
	return be.newBit(w, mask(x.v, bits) == mask(y.v, bits))
}

// Select implements secret.Backend.Select.
func (be *Backend) Select(c secret.Bit, t, f secret.Value) secret.Value {
	be.counters.Inc(secret.OpSelect)
	cond := be.bit(c)
	tv := be.value(t)
	fv := be.value(f)
	wires, err := circuits.NewMUX(be.cc, cond.Wire, tv.Wires, fv.Wires)
	be.check(err)
	if cond.v {
		return be.newValue(wires, tv.v)
	}
	return be.newValue(wires, fv.v)
}

// SelectBit implements secret.Backend.SelectBit.
func (be *Backend) SelectBit(c secret.Bit, t, f secret.Bit) secret.Bit {
	be.counters.Inc(secret.OpSelect)
	cond := be.bit(c)
	tb := be.bit(t)
	fb := be.bit(f)
	wires, err := circuits.NewMUX(be.cc, cond.Wire,
		[]circuit.Wire{tb.Wire}, []circuit.Wire{fb.Wire})
	be.check(err)
	if cond.v {
		return be.newBit(wires[0], tb.v)
	}
	return be.newBit(wires[0], fb.v)
}

// And implements secret.Backend.And.
func (be *Backend) And(a, b secret.Bit) secret.Bit {
	be.counters.Inc(secret.OpAnd)
	x := be.bit(a)
	y := be.bit(b)
	return be.newBit(be.cc.AND(x.Wire, y.Wire), x.v && y.v)
}

// Or implements secret.Backend.Or.
func (be *Backend) Or(a, b secret.Bit) secret.Bit {
	be.counters.Inc(secret.OpOr)
	x := be.bit(a)
	y := be.bit(b)
	return be.newBit(be.cc.OR(x.Wire, y.Wire), x.v || y.v)
}

// Xor implements secret.Backend.Xor.
func (be *Backend) Xor(a, b secret.Bit) secret.Bit {
	be.counters.Inc(secret.OpXor)
	x := be.bit(a)
	y := be.bit(b)
	return be.newBit(be.cc.XOR(x.Wire, y.Wire), x.v != y.v)
}

// Not implements secret.Backend.Not.
func (be *Backend) Not(a secret.Bit) secret.Bit {
	be.counters.Inc(secret.OpNot)
	x := be.bit(a)
	return be.newBit(be.cc.INV(x.Wire), !x.v)
}

// Bits implements secret.Backend.Bits.
func (be *Backend) Bits(v secret.Value, n int) []secret.Bit {
	be.checkBits(n)
	be.counters.Inc(secret.OpBits)
	x := be.value(v)
	result := make([]secret.Bit, n)
	for i := 0; i < n; i++ {
		result[i] = be.newBit(x.Wires[i], uint64(x.v)&(uint64(1)<<i) != 0)
	}
	return result
}

// FromBit implements secret.Backend.FromBit.
func (be *Backend) FromBit(b secret.Bit) secret.Value {
	x := be.bit(b)
	wires := be.cc.Const(0, be.bits())
	wires[0] = x.Wire
	var v int64
	if x.v {
		v = 1
	}
	return be.newValue(wires, v)
}

// Random implements secret.Backend.Random. The random value is an
// input of the circuit, sampled from the backend PRG.
func (be *Backend) Random(bits int) secret.Value {
	be.checkBits(bits)
	be.counters.Inc(secret.OpRandom)
	r := be.prg.Bits(bits)
	wires := be.cc.Const(0, be.bits())
	if bits > 0 {
		copy(wires, be.input(fmt.Sprintf("r%d", len(be.inputs)), bits, r))
	}
	return be.newValue(wires, int64(r))
}

// RandomBit implements secret.Backend.RandomBit.
func (be *Backend) RandomBit() secret.Bit {
	be.counters.Inc(secret.OpRandom)
	r := be.prg.Bits(1)
	wires := be.input(fmt.Sprintf("r%d", len(be.inputs)), 1, r)
	return be.newBit(wires[0], r != 0)
}

// Reveal implements secret.Backend.Reveal. The value becomes a
// circuit output.
func (be *Backend) Reveal(v secret.Value) int64 {
	be.counters.Inc(secret.OpReveal)
	x := be.value(v)
	be.output(x.Wires, mask(x.v, be.bits()))
	return x.v
}

// RevealBit implements secret.Backend.RevealBit.
func (be *Backend) RevealBit(b secret.Bit) bool {
	be.counters.Inc(secret.OpReveal)
	x := be.bit(b)
	var v uint64
	if x.v {
		v = 1
	}
	be.output([]circuit.Wire{x.Wire}, v)
	return x.v
}

// Counters implements secret.Backend.Counters.
func (be *Backend) Counters() *secret.Counters {
	return &be.counters
}
