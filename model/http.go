package model

type ParseRequestBody struct {
	ABC string `json:"abc"`
}

type ParseResponse struct {
	Title    string            `json:"title" yaml:"title"`
	Type     string            `json:"type,omitempty" yaml:"type,omitempty"`
	Key      string            `json:"key" yaml:"key"`
	Unit     string            `json:"unit" yaml:"unit"`
	Header   map[string]string `json:"header" yaml:"header"`
	Measures [][]string        `json:"measures" yaml:"measures"`
	Warnings []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type KeyResponse struct {
	Key          string            `json:"key" yaml:"key"`
	Name         string            `json:"name" yaml:"name"`
	Signature    []string          `json:"signature" yaml:"signature"`
	Scale        []string          `json:"scale" yaml:"scale"`
	Intervals    []string          `json:"intervals" yaml:"intervals"`
	Degrees      []string          `json:"degrees" yaml:"degrees"`
	Relatives    map[string]string `json:"relatives" yaml:"relatives"`
	SharpFlatNum int               `json:"sharp_flat_count" yaml:"sharp_flat_count"`
	Warnings     []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type PitchResponse struct {
	Name       string  `json:"name" yaml:"name"`
	Value      int     `json:"value" yaml:"value"`
	Helmholtz  string  `json:"helmholtz" yaml:"helmholtz"`
	Unicode    string  `json:"unicode" yaml:"unicode"`
	Frequency  float64 `json:"frequency" yaml:"frequency"`
	PianoKey   int     `json:"piano_key" yaml:"piano_key"`
	MIDINumber int     `json:"midi_number" yaml:"midi_number"`
}

type SearchResponse struct {
	Start      int     `json:"start"`
	NumMatches int     `json:"num_matches"`
	Results    []Entry `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
