// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package permute

import "math/bits"

// cipher is a bijection over [0, 2^k) built as an unbalanced Feistel
// network. The left half carries ceil(k/2) bits and the right half
// floor(k/2); the widths travel with the halves as they swap each
// round. Each round XORs into the left half a value that depends only
// on the right half, and XOR with a fixed value is self-inverse, so the
// composition is a bijection for any round count and any round
// function.
type cipher struct {
	k    uint
	keys [][mixKeySize]byte
}

func newCipher(size, seed uint64, rounds int) cipher {
	var k uint
	if size > 1 {
		k = uint(bits.Len64(size - 1))
	}
	return cipher{k: k, keys: roundKeys(seed, rounds)}
}

// halfMask returns the w-bit mask. Half widths never exceed 32 bits.
func halfMask(w uint) uint64 {
	return uint64(1)<<w - 1
}

// encrypt applies the Feistel rounds to v, which must be below 2^k.
func (c cipher) encrypt(v uint64) uint64 {
	if c.k == 0 {
		// single-element domain, the only bijection is the identity
		return v
	}
	wr := c.k / 2
	wl := c.k - wr
	l, r := v>>wr, v&halfMask(wr)
	for i := range c.keys {
		t := (l ^ mix(r, &c.keys[i])) & halfMask(wl)
		l, r = r, t
		wl, wr = wr, wl
	}
	return l<<wr | r
}
