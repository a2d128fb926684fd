package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EncodeVector serializes an embedding into the pgvector text literal,
// e.g. [0.1,0.2,0.3]. Empty vectors and non-finite components are rejected
// before they can reach the wire.
func EncodeVector(v []float32) (string, error) {
	if err := ValidateVector(v, len(v)); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(v) * 10)
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	b.WriteByte(']')
	return b.String(), nil
}

// DecodeVector parses a pgvector text literal back into an embedding.
func DecodeVector(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("invalid vector literal %q", s)
	}

	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil, fmt.Errorf("invalid vector literal: empty vector")
	}

	parts := strings.Split(inner, ",")
	v := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %q: %w", p, err)
		}
		v[i] = float32(f)
	}

	if err := ValidateVector(v, len(v)); err != nil {
		return nil, err
	}
	return v, nil
}

// ValidateVector checks that an embedding is non-empty, has only finite
// components, and matches the expected dimension.
func ValidateVector(v []float32, dimension int) error {
	if len(v) == 0 {
		return fmt.Errorf("empty embedding vector")
	}
	if dimension > 0 && len(v) != dimension {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(v), dimension)
	}
	for i, f := range v {
		f64 := float64(f)
		if math.IsNaN(f64) || math.IsInf(f64, 0) {
			return fmt.Errorf("non-finite embedding component at index %d", i)
		}
	}
	return nil
}
