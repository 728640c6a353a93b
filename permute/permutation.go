// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package permute generates pseudorandom permutations of [0, size)
// without materializing them. Every element is computed on demand in
// constant time and constant space by running the index through a keyed
// Feistel cipher over the smallest power-of-two domain covering the
// size, then cycle-walking the result back into range.
package permute

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"math"

	"github.com/pkg/errors"
)

// DefaultRounds is the number of Feistel rounds applied when the caller
// has no reason to choose otherwise. Bijectivity holds for any round
// count; more rounds only buy statistical mixing.
const DefaultRounds = 3

var (
	// ErrInvalidSize is returned when constructing a permutation of less than one element.
	ErrInvalidSize = errors.New("permutation size must be at least 1")
	// ErrInvalidRounds is returned when constructing a permutation with less than one Feistel round.
	ErrInvalidRounds = errors.New("round count must be at least 1")
	// ErrIndexOutOfRange is returned by lookups with an index at or beyond the permutation size.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Permutation is a pseudorandom permutation of the integers [0, size).
// It holds only the size, the seed and the derived round keys, and is
// immutable after construction; concurrent lookups need no
// synchronization.
type Permutation struct {
	size uint64
	seed uint64
	c    cipher
}

// New creates the permutation of [0, size) selected by seed. The same
// (size, seed, rounds) tuple always yields the same permutation.
func New(size, seed uint64, rounds int) (*Permutation, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	if rounds < 1 {
		return nil, ErrInvalidRounds
	}
	return &Permutation{
		size: size,
		seed: seed,
		c:    newCipher(size, seed, rounds),
	}, nil
}

// NewRandomized creates a permutation of [0, size) with a fresh,
// non-reproducible seed drawn from the system entropy source. The drawn
// seed is recoverable via Seed.
func NewRandomized(size uint64, rounds int) (*Permutation, error) {
	return NewWithEntropy(size, rounds, rand.Reader)
}

// NewWithEntropy is NewRandomized with an injected entropy source.
func NewWithEntropy(size uint64, rounds int, entropy io.Reader) (*Permutation, error) {
	var buf [8]byte
	if _, err := io.ReadFull(entropy, buf[:]); err != nil {
		return nil, errors.Wrap(err, "draw permutation seed")
	}
	return New(size, binary.BigEndian.Uint64(buf[:]), rounds)
}

// Get returns element i of the permutation. Calling it twice with the
// same index returns the same value, and over all indices every value
// in [0, size) is returned exactly once.
func (p *Permutation) Get(i uint64) (uint64, error) {
	if i >= p.size {
		return 0, errors.WithMessagef(ErrIndexOutOfRange, "index %d, size %d", i, p.size)
	}
	v, _ := p.walk(i)
	return v, nil
}

// Lookup is Get plus the number of cipher applications the call spent,
// including the cycle walk. Useful for calibrating round counts against
// observed walk lengths.
func (p *Permutation) Lookup(i uint64) (uint64, int, error) {
	if i >= p.size {
		return 0, 0, errors.WithMessagef(ErrIndexOutOfRange, "index %d, size %d", i, p.size)
	}
	v, steps := p.walk(i)
	return v, steps, nil
}

// walk applies the cipher to i, then to its own output, until the value
// falls inside [0, size). Iterating a bijection from i must eventually
// return to i itself, which is in range, so the walk terminates within
// i's orbit; the orbit bound only trips if the cipher stopped being a
// bijection.
func (p *Permutation) walk(i uint64) (uint64, int) {
	limit := p.orbitLimit()
	v := p.c.encrypt(i)
	steps := 1
	for v >= p.size {
		if uint64(steps) >= limit {
			panic(fmt.Sprintf("permute: cycle walk from %d exceeded orbit bound %d", i, limit))
		}
		v = p.c.encrypt(v)
		steps++
	}
	metricLookupCount().Add(1)
	metricWalkSteps().Observe(int64(steps))
	return v, steps
}

// orbitLimit bounds the cycle walk by the cipher domain size, the
// longest orbit a bijection on it can have.
func (p *Permutation) orbitLimit() uint64 {
	if p.c.k >= 64 {
		return math.MaxUint64
	}
	return uint64(1) << p.c.k
}

// All returns an iterator over (index, element) pairs in index order.
// The sequence is lazy and restartable; breaking out early has no side
// effect.
func (p *Permutation) All() iter.Seq2[uint64, uint64] {
	return func(yield func(uint64, uint64) bool) {
		for i := uint64(0); i < p.size; i++ {
			v, _ := p.walk(i)
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in index order, i.e. the
// sequence Get(0), Get(1), ... Get(size-1).
func (p *Permutation) Values() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for i := uint64(0); i < p.size; i++ {
			v, _ := p.walk(i)
			if !yield(v) {
				return
			}
		}
	}
}

// Range returns an iterator over elements start through stop-1. The
// window is clamped to the permutation bounds.
func (p *Permutation) Range(start, stop uint64) iter.Seq[uint64] {
	if stop > p.size {
		stop = p.size
	}
	return func(yield func(uint64) bool) {
		for i := start; i < stop; i++ {
			v, _ := p.walk(i)
			if !yield(v) {
				return
			}
		}
	}
}

// Len returns the number of elements in the permutation.
func (p *Permutation) Len() uint64 {
	return p.size
}

// Seed returns the seed selecting this permutation.
func (p *Permutation) Seed() uint64 {
	return p.seed
}

// Rounds returns the number of Feistel rounds per cipher invocation.
func (p *Permutation) Rounds() int {
	return len(p.c.keys)
}

// String implements stringer
func (p *Permutation) String() string {
	return fmt.Sprintf("Permutation(size=%d, seed=%d, rounds=%d)", p.size, p.seed, p.Rounds())
}
