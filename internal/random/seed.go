// Package random provides seed generation and resolution for task draws.
//
// Server seeds come from crypto/rand. Clients may pin a seed to replay a
// task; such seeds must fit in a non-negative int64.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"

	apperrors "github.com/louisbranch/abacus/internal/platform/errors"
)

// Seed sources recorded alongside a task.
const (
	SeedSourceClient = "CLIENT"
	SeedSourceServer = "SERVER"
)

const maxSeedInt64 = math.MaxInt64

// ErrSeedOutOfRange returns the error used when a client seed exceeds int64.
func ErrSeedOutOfRange() error {
	return apperrors.WithMetadata(apperrors.CodeSeedOutOfRange, "seed is out of range", map[string]string{
		"Max": fmt.Sprintf("%d", uint64(maxSeedInt64)),
	})
}

// NewSeed generates a random non-negative seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:]) & maxSeedInt64), nil
}

// ResolveSeed returns the client seed when one is supplied, otherwise a
// fresh seed from seedFunc, along with the source that produced it.
func ResolveSeed(requested *uint64, seedFunc func() (int64, error)) (int64, string, error) {
	if requested != nil {
		if *requested > maxSeedInt64 {
			return 0, "", ErrSeedOutOfRange()
		}
		return int64(*requested), SeedSourceClient, nil
	}
	if seedFunc == nil {
		seedFunc = NewSeed
	}
	seed, err := seedFunc()
	if err != nil {
		return 0, "", fmt.Errorf("generate seed: %w", err)
	}
	return seed, SeedSourceServer, nil
}
