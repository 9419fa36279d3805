package note

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationReduces(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(MustDuration(3, 16), MustDuration(6, 32))
	assert.Equal("3/16", MustDuration(6, 32).String())
	assert.Equal("2", MustDuration(4, 2).String())
	assert.Equal(MustDuration(1, 2), MustDuration(-1, -2))

	_, err := NewDuration(1, 0)
	assert.ErrorIs(err, ErrInvalidDuration)
}

func TestDurationArithmetic(t *testing.T) {
	assert := assert.New(t)
	eighth := MustDuration(1, 8)

	assert.Equal(MustDuration(3, 16), MustDuration(3, 2).Mul(eighth))
	assert.Equal(MustDuration(3, 2), MustDuration(3, 16).Div(eighth))
	assert.Equal(MustDuration(1, 4), eighth.Add(eighth))
	assert.Equal(-1, eighth.Cmp(MustDuration(1, 4)))
	assert.Equal(0, eighth.Cmp(MustDuration(2, 16)))
	assert.InDelta(0.125, eighth.Float(), 1e-12)
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration(" 6/8 ")
	require.NoError(t, err)
	assert.Equal(t, MustDuration(3, 4), d)

	d, err = ParseDuration("2")
	require.NoError(t, err)
	assert.Equal(t, MustDuration(2, 1), d)

	for _, bad := range []string{"", "1/", "a/8", "1/0"} {
		_, err := ParseDuration(bad)
		assert.ErrorIs(t, err, ErrInvalidDuration, bad)
	}
}

func TestDurationJSON(t *testing.T) {
	b, err := json.Marshal(map[string]Duration{"unit": MustDuration(1, 8)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"unit": "1/8"}`, string(b))

	var out map[string]Duration
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, MustDuration(1, 8), out["unit"])
}
