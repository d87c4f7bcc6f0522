package cronx

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
)

// hashSeed turns a caller-supplied hash_id (raw bytes or UTF-8 text)
// into the byte slice fed to the stable hash below. Accepts []byte,
// string, or nil (empty seed, used when hash mode isn't requested but
// an "H" token still needs a deterministic anchor).
func hashSeed(hashID any) ([]byte, error) {
	switch v := hashID.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, typeError("hash_id must be []byte or string, got %T", hashID)
	}
}

// stableHash produces a deterministic, evenly distributed integer for
// the tuple (seed, fieldIndex). It is documented and frozen: the same
// (seed, fieldIndex) always yields the same value for this library
// version. We use MD5 of "<fieldIndex>:<seed bytes>" truncated to a
// uint64 -- the exact byte layout is this port's own choice (see
// DESIGN.md: the upstream source's layout is not replicated, since
// cross-implementation bit-for-bit compatibility was never a
// requirement of this port).
func stableHash(seed []byte, field FieldIndex) uint64 {
	h := md5.New()
	fmt.Fprintf(h, "%d:", field)
	h.Write(seed)
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

// hashInRange maps the stable hash for (seed, field) into [lo, hi].
func hashInRange(seed []byte, field FieldIndex, lo, hi int) int {
	span := hi - lo + 1
	if span <= 0 {
		return lo
	}
	return lo + int(stableHash(seed, field)%uint64(span))
}

// hashOffset maps the stable hash for (seed, field) into [0, step).
func hashOffset(seed []byte, field FieldIndex, step int) int {
	if step <= 0 {
		return 0
	}
	return int(stableHash(seed, field) % uint64(step))
}

// randomInRange draws a non-deterministic integer in [lo, hi] from
// crypto/rand, used to resolve "R" tokens at expansion time.
func randomInRange(lo, hi int) (int, error) {
	span := int64(hi - lo + 1)
	if span <= 0 {
		return lo, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return 0, badCron("failed to draw random value: %v", err)
	}
	return lo + int(n.Int64()), nil
}

func randomOffset(step int) (int, error) {
	if step <= 0 {
		return 0, nil
	}
	return randomInRange(0, step-1)
}
