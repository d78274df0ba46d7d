package build

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint identifies what went into and came out of one rendered page.
type Fingerprint struct {
	SourceHash string
	OutputHash string
}

func NewFingerprint(source, output []byte) Fingerprint {
	return Fingerprint{
		SourceHash: HashBytes(source),
		OutputHash: HashBytes(output),
	}
}

func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
