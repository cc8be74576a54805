// Package chain implements the on-chain half of the platform: a JSON-RPC
// client, instruction building for the vote and stake programs, and the
// submit-then-poll action wrappers.
package chain

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// PublicKey is a 32-byte account address.
type PublicKey [32]byte

// SystemProgramID is the native system program every transfer touches.
var SystemProgramID = MustPublicKey("11111111111111111111111111111111")

// PublicKeyFromBase58 decodes a base58 address.
func PublicKeyFromBase58(s string) (PublicKey, error) {
	var pk PublicKey
	raw, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("decode address %q: %w", s, err)
	}
	if len(raw) != len(pk) {
		return pk, fmt.Errorf("address %q: got %d bytes, want %d", s, len(raw), len(pk))
	}
	copy(pk[:], raw)
	return pk, nil
}

// MustPublicKey is PublicKeyFromBase58 for known-good constants.
func MustPublicKey(s string) PublicKey {
	pk, err := PublicKeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return pk
}

func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

func (pk PublicKey) Bytes() []byte {
	out := make([]byte, len(pk))
	copy(out, pk[:])
	return out
}

// IsOnCurve reports whether the bytes decode to a valid curve point.
// Program-derived addresses must NOT be on the curve, so nobody holds a
// private key for them.
func (pk PublicKey) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(pk[:])
	return err == nil
}

// pdaMarker terminates the hash input for program-derived addresses.
var pdaMarker = []byte("ProgramDerivedAddress")

var errNoBump = errors.New("unable to find a viable program address bump")

// CreateProgramAddress hashes the seeds plus an explicit bump and fails when
// the result lands on the curve.
func CreateProgramAddress(seeds [][]byte, program PublicKey) (PublicKey, error) {
	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > 32 {
			return PublicKey{}, fmt.Errorf("seed exceeds 32 bytes")
		}
		h.Write(seed)
	}
	h.Write(program[:])
	h.Write(pdaMarker)

	var pk PublicKey
	copy(pk[:], h.Sum(nil))
	if pk.IsOnCurve() {
		return PublicKey{}, errors.New("derived address is on the curve")
	}
	return pk, nil
}

// FindProgramAddress searches bumps from 255 downward for the first
// off-curve derivation, returning the address and the bump that produced it.
func FindProgramAddress(seeds [][]byte, program PublicKey) (PublicKey, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		full := make([][]byte, 0, len(seeds)+1)
		full = append(full, seeds...)
		full = append(full, []byte{uint8(bump)})
		pk, err := CreateProgramAddress(full, program)
		if err == nil {
			return pk, uint8(bump), nil
		}
	}
	return PublicKey{}, 0, errNoBump
}
