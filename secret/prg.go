//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package secret

import (
	"encoding/binary"
	"io"

	"github.com/markkurossi/oheap/env"
	"golang.org/x/crypto/chacha20"
)

// PRG implements a ChaCha20 based pseudorandom generator for secret
// random values.
type PRG struct {
	cipher *chacha20.Cipher
	zero   [64]byte
	buf    [64]byte
	ofs    int
}

// NewPRG creates a new PRG from the 32-byte seed.
func NewPRG(seed []byte) (*PRG, error) {
	var nonce [chacha20.NonceSize]byte
	cipher, err := chacha20.NewUnauthenticatedCipher(seed, nonce[:])
	if err != nil {
		return nil, err
	}
	return &PRG{
		cipher: cipher,
		ofs:    len(PRG{}.buf),
	}, nil
}

// NewRandomPRG creates a new PRG seeded from the entropy source of
// the configuration. The nil configuration uses crypto/rand.
func NewRandomPRG(config *env.Config) (*PRG, error) {
	var seed [chacha20.KeySize]byte
	if _, err := io.ReadFull(config.GetRandom(), seed[:]); err != nil {
		return nil, err
	}
	return NewPRG(seed[:])
}

// Read implements io.Reader.
func (prg *PRG) Read(p []byte) (int, error) {
	for i := range p {
		if prg.ofs >= len(prg.buf) {
			prg.cipher.XORKeyStream(prg.buf[:], prg.zero[:])
			prg.ofs = 0
		}
		p[i] = prg.buf[prg.ofs]
		prg.ofs++
	}
	return len(p), nil
}

// Uint64 returns a random 64-bit value.
func (prg *PRG) Uint64() uint64 {
	var b [8]byte
	prg.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// Bits returns a random value of n bits, n <= 64.
func (prg *PRG) Bits(n int) uint64 {
	if n <= 0 {
		return 0
	}
	v := prg.Uint64()
	if n < 64 {
		v &= uint64(1)<<n - 1
	}
	return v
}
