// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package permute_test

import (
	"bytes"
	"fmt"
	"math"
	"math/bits"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/randperm/permute"
)

func sequence(t *testing.T, p *permute.Permutation) []uint64 {
	seq := make([]uint64, 0, p.Len())
	for i := uint64(0); i < p.Len(); i++ {
		v, err := p.Get(i)
		require.NoError(t, err)
		seq = append(seq, v)
	}
	return seq
}

func TestGolden(t *testing.T) {
	p, err := permute.New(8, 42, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 2, 0, 7, 6, 1, 5, 3}, sequence(t, p))

	// reconstruction reproduces the sequence exactly
	again, err := permute.New(8, 42, 4)
	require.NoError(t, err)
	assert.Equal(t, sequence(t, p), sequence(t, again))

	// a neighboring seed lands elsewhere
	other, err := permute.New(8, 43, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 2, 0, 6, 7, 1, 4, 3}, sequence(t, other))

	p100, err := permute.New(100, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 57, 64, 38, 12, 93, 41, 96, 72, 0}, sequence(t, p100)[:10])
}

func TestBijectivity(t *testing.T) {
	for _, size := range []uint64{1, 2, 3, 7, 8, 100, 1000, 1 << 12, 4097} {
		p, err := permute.New(size, 0xdead, permute.DefaultRounds)
		require.NoError(t, err)

		hits := make([]bool, size)
		var count uint64
		for v := range p.Values() {
			require.Less(t, v, size, "size %d", size)
			require.False(t, hits[v], "size %d duplicate %d", size, v)
			hits[v] = true
			count++
		}
		assert.Equal(t, size, count)
	}
}

func TestBigPrimeBijectivity(t *testing.T) {
	if testing.Short() {
		t.Skip("million-element sweep")
	}

	const size = 1_000_003 // prime, not near a power of two
	p, err := permute.New(size, 1, permute.DefaultRounds)
	require.NoError(t, err)

	seen := make([]uint64, (size+63)/64)
	var totalSteps, maxSteps uint64
	for i := uint64(0); i < size; i++ {
		v, steps, err := p.Lookup(i)
		require.NoError(t, err)
		require.Less(t, v, uint64(size))
		require.Zero(t, seen[v>>6]&(1<<(v&63)), "duplicate element %d", v)
		seen[v>>6] |= 1 << (v & 63)
		totalSteps += uint64(steps)
		if uint64(steps) > maxSteps {
			maxSteps = uint64(steps)
		}
	}

	var got uint64
	for _, w := range seen {
		got += uint64(bits.OnesCount64(w))
	}
	assert.Equal(t, uint64(size), got)

	// the cipher domain is 2^20, so walks should hardly ever recurse
	avg := float64(totalSteps) / float64(size)
	assert.LessOrEqual(t, avg, 10.0, "average cycle walk")
	t.Logf("cycle walk: avg %.3f, max %d", avg, maxSteps)
}

func TestDeterminism(t *testing.T) {
	p, err := permute.New(1000, 99, 4)
	require.NoError(t, err)
	q, err := permute.New(1000, 99, 4)
	require.NoError(t, err)
	assert.Equal(t, sequence(t, p), sequence(t, q))
}

func TestSeedSensitivity(t *testing.T) {
	const size = 64
	const seeds = 40

	seqs := make([][]uint64, seeds)
	for s := range seqs {
		p, err := permute.New(size, uint64(s), permute.DefaultRounds)
		require.NoError(t, err)
		seqs[s] = sequence(t, p)
	}

	var pairs, differing int
	for a := 0; a < seeds; a++ {
		for b := a + 1; b < seeds; b++ {
			pairs++
			if !assert.ObjectsAreEqual(seqs[a], seqs[b]) {
				differing++
			}
		}
	}
	assert.GreaterOrEqual(t, float64(differing)/float64(pairs), 0.99)
}

func TestRangeValidation(t *testing.T) {
	p, err := permute.New(10, 0, permute.DefaultRounds)
	require.NoError(t, err)

	if _, err := p.Get(10); assert.Error(t, err) {
		assert.True(t, errors.Is(err, permute.ErrIndexOutOfRange))
	}
	_, err = p.Get(math.MaxUint64)
	assert.True(t, errors.Is(err, permute.ErrIndexOutOfRange))
	_, _, err = p.Lookup(10)
	assert.True(t, errors.Is(err, permute.ErrIndexOutOfRange))

	_, err = p.Get(0)
	assert.NoError(t, err)
	_, err = p.Get(9)
	assert.NoError(t, err)
}

func TestConstructorValidation(t *testing.T) {
	_, err := permute.New(0, 1, permute.DefaultRounds)
	assert.True(t, errors.Is(err, permute.ErrInvalidSize))

	_, err = permute.New(10, 1, 0)
	assert.True(t, errors.Is(err, permute.ErrInvalidRounds))
	_, err = permute.New(10, 1, -3)
	assert.True(t, errors.Is(err, permute.ErrInvalidRounds))

	_, err = permute.NewWithEntropy(10, permute.DefaultRounds, bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestSingleElement(t *testing.T) {
	p, err := permute.New(1, 12345, permute.DefaultRounds)
	require.NoError(t, err)

	v, err := p.Get(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	_, err = p.Get(1)
	assert.True(t, errors.Is(err, permute.ErrIndexOutOfRange))
}

func TestIdempotentRead(t *testing.T) {
	p, err := permute.New(100, 5, permute.DefaultRounds)
	require.NoError(t, err)

	a, err := p.Get(5)
	require.NoError(t, err)
	b, err := p.Get(5)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, s1, err := p.Lookup(5)
	require.NoError(t, err)
	_, s2, err := p.Lookup(5)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

func TestRandomizedSeed(t *testing.T) {
	p, err := permute.NewRandomized(1000, permute.DefaultRounds)
	require.NoError(t, err)
	q, err := permute.NewRandomized(1000, permute.DefaultRounds)
	require.NoError(t, err)
	assert.NotEqual(t, p.Seed(), q.Seed())

	// the drawn seed reproduces the permutation
	r, err := permute.New(1000, p.Seed(), permute.DefaultRounds)
	require.NoError(t, err)
	assert.Equal(t, sequence(t, p), sequence(t, r))
}

func TestIterators(t *testing.T) {
	p, err := permute.New(50, 21, permute.DefaultRounds)
	require.NoError(t, err)
	want := sequence(t, p)

	var i uint64
	for idx, v := range p.All() {
		require.Equal(t, i, idx)
		require.Equal(t, want[i], v)
		i++
	}
	assert.Equal(t, uint64(50), i)

	// early break leaves no trace, restart yields the same sequence
	var first []uint64
	for v := range p.Values() {
		first = append(first, v)
		if len(first) == 3 {
			break
		}
	}
	assert.Equal(t, want[:3], first)

	var again []uint64
	for v := range p.Values() {
		again = append(again, v)
	}
	assert.Equal(t, want, again)
}

func TestRangeWindow(t *testing.T) {
	p, err := permute.New(10, 3, permute.DefaultRounds)
	require.NoError(t, err)
	want := sequence(t, p)

	var window []uint64
	for v := range p.Range(2, 5) {
		window = append(window, v)
	}
	assert.Equal(t, want[2:5], window)

	// stop is clamped to the permutation size
	window = window[:0]
	for v := range p.Range(7, 1000) {
		window = append(window, v)
	}
	assert.Equal(t, want[7:], window)

	for range p.Range(4, 4) {
		t.Fatal("empty window must not yield")
	}
}

func TestConcurrentGet(t *testing.T) {
	const size = 1000
	p, err := permute.New(size, 8, permute.DefaultRounds)
	require.NoError(t, err)
	want := sequence(t, p)

	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			for i := uint64(0); i < size; i++ {
				v, err := p.Get(i)
				if err != nil {
					return err
				}
				if v != want[i] {
					return errors.Errorf("element %d: got %d, want %d", i, v, want[i])
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestAccessors(t *testing.T) {
	p, err := permute.New(123, 456, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(123), p.Len())
	assert.Equal(t, uint64(456), p.Seed())
	assert.Equal(t, 7, p.Rounds())
	assert.Equal(t, "Permutation(size=123, seed=456, rounds=7)", fmt.Sprintf("%v", p))
}
