// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package permute

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// mixKeySize is the size of a per-round mixing key in bytes.
const mixKeySize = 32

// roundKeys derives one mixing key per Feistel round from the seed.
// Key r is BLAKE2b-256(seed_be64 || r_be32), so every (seed, round)
// pair selects an independent keyed hash.
func roundKeys(seed uint64, rounds int) [][mixKeySize]byte {
	keys := make([][mixKeySize]byte, rounds)
	var buf [12]byte
	binary.BigEndian.PutUint64(buf[:8], seed)
	for r := range keys {
		binary.BigEndian.PutUint32(buf[8:], uint32(r))
		keys[r] = blake2b.Sum256(buf[:])
	}
	return keys
}

// mix is the Feistel round function. It hashes the half value under the
// round key with keyed BLAKE2b-256 and folds the digest down to a
// uint64. Deterministic and total; the caller masks the result to the
// half width it needs.
func mix(v uint64, key *[mixKeySize]byte) uint64 {
	h, _ := blake2b.New256(key[:])
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
	var sum [blake2b.Size256]byte
	return binary.BigEndian.Uint64(h.Sum(sum[:0])[:8])
}
