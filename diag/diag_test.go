package diag

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddfAndHas(t *testing.T) {
	var ws Warnings
	ws.Addf(ValueOutOfRange, "value %d outside 0--11", 13)

	assert := assert.New(t)
	assert.Len(ws, 1)
	assert.True(ws.Has(ValueOutOfRange))
	assert.False(ws.Has(RestDropped))
	assert.Equal("value-out-of-range: value 13 outside 0--11", ws[0].String())
}

func TestExtendKeepsOrder(t *testing.T) {
	var a, b Warnings
	a.Addf(RestDropped, "first")
	b.Addf(DuplicateField, "second")
	b.Addf(MissingKey, "third")
	a.Extend(b)

	assert.Equal(t, []Code{RestDropped, DuplicateField, MissingKey}, []Code{a[0].Code, a[1].Code, a[2].Code})
}

func TestLogWritesWarnLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var ws Warnings
	ws.Addf(KeyTrailingText, "ignoring %q", "clef=bass")
	ws.Log(logger, "tune", "Kesh")

	out := buf.String()
	assert := assert.New(t)
	assert.Contains(out, "level=WARN")
	assert.Contains(out, "code=key-trailing-text")
	assert.Contains(out, "tune=Kesh")
}
