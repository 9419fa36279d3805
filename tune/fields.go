package tune

import (
	"regexp"
	"strings"
)

// InfoField describes a single-letter ABC information field and where it
// may appear.
type InfoField struct {
	Key  byte
	Name string

	FileHeader bool
	TuneHeader bool
	TuneBody   bool
	Inline     bool

	// Type is "string", "instruction" or "-".
	Type string
}

const infoFieldTable = `
Field name          file header  tune header  tune body  inline  type
A:area              yes          yes          no         no      string
B:book              yes          yes          no         no      string
C:composer          yes          yes          no         no      string
D:discography       yes          yes          no         no      string
F:file url          yes          yes          no         no      string
G:group             yes          yes          no         no      string
H:history           yes          yes          no         no      string
I:instruction       yes          yes          yes        yes     instruction
K:key               no           yes          yes        yes     instruction
L:unit note length  yes          yes          yes        yes     instruction
M:meter             yes          yes          yes        yes     instruction
m:macro             yes          yes          yes        yes     instruction
N:notes             yes          yes          yes        yes     string
O:origin            yes          yes          no         no      string
P:parts             no           yes          yes        yes     instruction
Q:tempo             no           yes          yes        yes     instruction
R:rhythm            yes          yes          yes        yes     string
r:remark            yes          yes          yes        yes     -
S:source            yes          yes          no         no      string
s:symbol line       no           no           yes        no      instruction
T:tune title        no           yes          yes        no      string
U:user defined      yes          yes          yes        yes     instruction
V:voice             no           yes          yes        yes     instruction
W:words             no           yes          yes        no      string
w:words             no           no           yes        no      string
X:reference number  no           yes          no         no      instruction
Z:transcription     yes          yes          no         no      string
`

var reInfoFieldRow = regexp.MustCompile(`^(.+?)\s+(yes|no)\s+(yes|no)\s+(yes|no)\s+(yes|no)\s+(\S+)$`)

// InfoFields maps each field key, e.g. 'T', to its description.
var InfoFields = parseInfoFieldTable(infoFieldTable)

func parseInfoFieldTable(raw string) map[byte]InfoField {
	fields := make(map[byte]InfoField)
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	for _, line := range lines[1:] {
		m := reInfoFieldRow.FindStringSubmatch(line[2:])
		if m == nil {
			panic("malformed info field row: " + line)
		}
		fields[line[0]] = InfoField{
			Key:        line[0],
			Name:       strings.TrimSpace(m[1]),
			FileHeader: m[2] == "yes",
			TuneHeader: m[3] == "yes",
			TuneBody:   m[4] == "yes",
			Inline:     m[5] == "yes",
			Type:       m[6],
		}
	}
	return fields
}

func fieldKeys(allowed func(InfoField) bool) map[byte]bool {
	keys := make(map[byte]bool)
	for k, f := range InfoFields {
		if allowed(f) {
			keys[k] = true
		}
	}
	return keys
}

func FileHeaderFields() map[byte]bool {
	return fieldKeys(func(f InfoField) bool { return f.FileHeader })
}

func TuneHeaderFields() map[byte]bool {
	return fieldKeys(func(f InfoField) bool { return f.TuneHeader })
}

func TuneBodyFields() map[byte]bool {
	return fieldKeys(func(f InfoField) bool { return f.TuneBody })
}

func InlineFields() map[byte]bool {
	return fieldKeys(func(f InfoField) bool { return f.Inline })
}

// isFieldLine reports whether line is an information field like "T:Kesh".
func isFieldLine(line string) bool {
	if len(line) < 2 || line[1] != ':' {
		return false
	}
	_, ok := InfoFields[line[0]]
	return ok
}
