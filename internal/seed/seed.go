// Package seed derives per-step random seeds from a composition's master
// seed.
//
// Derivation is a pure function of (master seed, operation identity,
// position). It is versioned: the domain tag baked into the hash input and
// the exported Version constant move together, so a change to the mixing
// function is a visible, breaking change rather than a silent one.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
)

// Version identifies the derivation algorithm. Bump it, and the domain
// tag below, whenever the mixing function changes.
const Version = 1

const domainTag = "garble.seed.v1"

// Derive maps (master, kind, version, position) to a step seed.
//
// All fields are length-prefixed before hashing so that no two distinct
// inputs can collide by concatenation ambiguity. Deterministic across
// processes and architectures; total over its domain.
func Derive(master uint64, kind, version string, position int) uint64 {
	h := sha256.New()
	writeField(h, []byte(domainTag))

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], master)
	writeField(h, buf[:])

	writeField(h, []byte(kind))
	writeField(h, []byte(version))

	binary.BigEndian.PutUint64(buf[:], uint64(int64(position)))
	writeField(h, buf[:])

	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

func writeField(h hash.Hash, data []byte) {
	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(data)))
	h.Write(length[:])
	h.Write(data)
}
