package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	alphabet      = "0123456789abcdefghijklmnopqrstuvwxyz"
	defaultLength = 16
)

// Generator creates opaque IDs for job runs and queued jobs.
type Generator interface {
	NewID() (string, error)
}

type NanoGenerator struct {
	prefix string
	length int
}

// NewNanoGenerator returns ids shaped like "<prefix>_<16 chars>".
func NewNanoGenerator(prefix string) *NanoGenerator {
	return &NanoGenerator{prefix: prefix, length: defaultLength}
}

func (g *NanoGenerator) NewID() (string, error) {
	value, err := gonanoid.Generate(alphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	if g.prefix == "" {
		return value, nil
	}
	return g.prefix + "_" + value, nil
}

// Sequence is a deterministic Generator for tests.
type Sequence struct {
	Prefix string
	next   int
}

func (s *Sequence) NewID() (string, error) {
	s.next++
	return fmt.Sprintf("%s%d", s.Prefix, s.next), nil
}
