package pitch

import (
	"testing"

	"github.com/jsphweid/abcdex/diag"
	"github.com/stretchr/testify/assert"
)

func TestSimpleIntervalCoercion(t *testing.T) {
	cases := []struct {
		in, out int
		warn    bool
	}{
		{0, 0, false},
		{12, 12, false},
		{7, 7, false},
		{-7, 7, true},
		{13, 1, true},
		{24, 12, true},
		{-12, 12, true},
	}
	for _, c := range cases {
		i, ws := NewSimpleInterval(c.in)
		assert.Equal(t, c.out, i.Value(), c.in)
		assert.Equal(t, c.warn, ws.Has(diag.IntervalCoerced), c.in)
	}
}

func TestSimpleIntervalNames(t *testing.T) {
	assert := assert.New(t)

	i, err := ParseSimpleInterval("m3")
	assert.NoError(err)
	assert.Equal(3, i.Value())
	assert.Equal("M6", i.Inverse().Name())
	assert.Equal(1.5, i.WholeSteps())

	_, err = ParseSimpleInterval("d5")
	assert.ErrorIs(err, ErrInvalidInterval)
}

func TestSignedIntervalNames(t *testing.T) {
	cases := map[int]string{
		0:   "P1",
		3:   "m3",
		12:  "P8",
		15:  "P8+m3",
		24:  "2(P8)",
		27:  "2(P8)+m3",
		-3:  "-[m3]",
		-27: "-[2(P8)+m3]",
	}
	for v, name := range cases {
		assert.Equal(t, name, NewSignedInterval(v).Name(), v)
	}

	s, ws := NewSignedInterval(-15).Simple()
	assert.Equal(t, 3, s.Value())
	assert.NotEmpty(t, ws)
}
