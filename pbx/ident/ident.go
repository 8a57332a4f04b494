// Package ident allocates object identifiers.
//
// Identifiers are 24 uppercase hexadecimal characters. Generators only
// propose candidates; callers check them against the graph and ask again on
// collision.
package ident

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/joshuapare/pbxkit/pbx"
)

// Generator proposes identifiers.
type Generator interface {
	Next() pbx.ID
}

// Random returns a generator backed by random UUIDs.
func Random() Generator { return random{} }

type random struct{}

func (random) Next() pbx.ID {
	u := uuid.New()
	return encode(u[:pbx.IDLen/2])
}

// Deterministic returns a generator whose sequence depends only on seed.
// Two generators with the same seed yield the same identifiers, which keeps
// generated projects reproducible.
func Deterministic(seed string) Generator {
	return &deterministic{seed: []byte(seed)}
}

type deterministic struct {
	seed []byte
	n    uint64
}

func (d *deterministic) Next() pbx.ID {
	h, _ := blake2b.New(pbx.IDLen/2, nil) // sizes 1..64 never fail
	h.Write(d.seed)
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], d.n)
	h.Write(ctr[:])
	d.n++
	return encode(h.Sum(nil))
}

func encode(b []byte) pbx.ID {
	return pbx.ID(strings.ToUpper(hex.EncodeToString(b)))
}

// Unique asks gen until it proposes an identifier not yet taken. It gives
// up after attempts tries and returns "".
func Unique(gen Generator, taken func(pbx.ID) bool, attempts int) pbx.ID {
	for i := 0; i < attempts; i++ {
		id := gen.Next()
		if id.Valid() && !taken(id) {
			return id
		}
	}
	return ""
}
