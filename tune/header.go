package tune

import (
	"fmt"
	"iter"
)

// Header maps field names ("tune title", "key", ...) to values in the
// order they were first seen. A repeated field is stored again under a
// numbered name: "tune title", "tune title 2", "tune title 3".
type Header struct {
	names  []string
	values map[string]string
}

func newHeader() *Header {
	return &Header{values: make(map[string]string)}
}

// add stores value under name, numbering it if name is taken, and returns
// the name used.
func (h *Header) add(name, value string) string {
	stored := name
	for i := 2; ; i++ {
		if _, taken := h.values[stored]; !taken {
			break
		}
		stored = fmt.Sprintf("%s %d", name, i)
	}
	h.names = append(h.names, stored)
	h.values[stored] = value
	return stored
}

// appendTo continues a field value with a space, for "+:" lines.
func (h *Header) appendTo(name, more string) {
	h.values[name] += " " + more
}

func (h *Header) Get(name string) (string, bool) {
	v, ok := h.values[name]
	return v, ok
}

// Value is "" for a missing field.
func (h *Header) Value(name string) string {
	return h.values[name]
}

func (h *Header) Names() []string {
	return append([]string(nil), h.names...)
}

func (h *Header) Len() int {
	return len(h.names)
}

// All yields the fields in order.
func (h *Header) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, n := range h.names {
			if !yield(n, h.values[n]) {
				return
			}
		}
	}
}

// Map copies the header into a plain map.
func (h *Header) Map() map[string]string {
	m := make(map[string]string, len(h.values))
	for k, v := range h.values {
		m[k] = v
	}
	return m
}
