package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"io"
)

// Signer accumulates every build input that affects all outputs at once:
// configuration, templates, the note graph and the tool version. Two builds
// with the same signature may reuse each other's outputs.
type Signer struct {
	h   hash.Hash
	err error
}

// NewSigner starts a signature for the given tool version.
func NewSigner(version string) *Signer {
	s := &Signer{h: sha256.New()}
	s.section("version")
	_, _ = io.WriteString(s.h, version)
	return s
}

// section separates parts so that moving bytes between parts changes the sum.
func (s *Signer) section(name string) {
	_, _ = fmt.Fprintf(s.h, "\x00%s\x00", name)
}

// AddJSON adds the JSON encoding of v.
func (s *Signer) AddJSON(name string, v any) {
	if s.err != nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.err = fmt.Errorf("signing %s: %w", name, err)
		return
	}
	s.section(name)
	_, _ = s.h.Write(data)
}

// AddStrings adds each string on its own line.
func (s *Signer) AddStrings(name string, values []string) {
	s.section(name)
	for _, v := range values {
		_, _ = io.WriteString(s.h, v)
		_, _ = io.WriteString(s.h, "\n")
	}
}

// AddFrom adds whatever write produces, such as a template directory digest.
func (s *Signer) AddFrom(name string, write func(io.Writer) error) {
	if s.err != nil {
		return
	}
	s.section(name)
	if err := write(s.h); err != nil {
		s.err = fmt.Errorf("signing %s: %w", name, err)
	}
}

// Sum returns the hex signature, or the first error met while adding parts.
func (s *Signer) Sum() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return hex.EncodeToString(s.h.Sum(nil)), nil
}
