package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for range 100 {
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestIntN(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		n    int
		want int
	}{
		{name: "zero maps to zero", src: fixedSource(0), n: 52, want: 0},
		{name: "just below one maps to last", src: fixedSource(0.9999999), n: 52, want: 51},
		{name: "midpoint", src: fixedSource(0.5), n: 4, want: 2},
		{name: "rounded up source is clamped", src: fixedSource(1.0), n: 4, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntN(tt.src, tt.n))
		})
	}

	assert.Panics(t, func() { IntN(fixedSource(0), 0) })
}

func TestReaderIsReproducible(t *testing.T) {
	a := make([]byte, 16)
	b := make([]byte, 16)

	n, err := Reader{Src: New(7)}.Read(a)
	require.NoError(t, err)
	require.Equal(t, 16, n)

	_, err = Reader{Src: New(7)}.Read(b)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
