package model

// Entry is one tune in the catalog.
type Entry struct {
	ID    string `json:"id" yaml:"id" dynamodbav:"PK"`
	File  string `json:"file" yaml:"file" dynamodbav:"File"`
	Index int    `json:"index" yaml:"index" dynamodbav:"Index"`

	Reference int    `json:"reference,omitempty" yaml:"reference,omitempty" dynamodbav:"Reference,omitempty"`
	Title     string `json:"title" yaml:"title" dynamodbav:"Title"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty" dynamodbav:"Type,omitempty"`
	Key       string `json:"key,omitempty" yaml:"key,omitempty" dynamodbav:"Key,omitempty"`
	Meter     string `json:"meter,omitempty" yaml:"meter,omitempty" dynamodbav:"Meter,omitempty"`

	NumMeasures int `json:"num_measures" yaml:"num_measures" dynamodbav:"NumMeasures"`
	NumNotes    int `json:"num_notes" yaml:"num_notes" dynamodbav:"NumNotes"`
	// Incipit is the first measures written back out as ABC.
	Incipit string `json:"incipit,omitempty" yaml:"incipit,omitempty" dynamodbav:"Incipit,omitempty"`

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty" dynamodbav:"Warnings,omitempty"`
	// Error is set when the tune could not be parsed. The entry is kept so
	// failures show up in reports.
	Error string `json:"error,omitempty" yaml:"error,omitempty" dynamodbav:"Error,omitempty"`
}

func (e Entry) Failed() bool {
	return e.Error != ""
}
