//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/abcdex/cmd"
	"github.com/jsphweid/abcdex/model"
	"github.com/stretchr/testify/assert"
)

const library = `%abc-2.1

X:1
T:Have a Drink with Me
R:jig
M:6/8
K:G
BAG E2D|EGD EGA|BAB GED|EAA ABc|BAG E2D|EGD EGA|BAB GED|EGG G3:|
|:GBd e2d|dgd B2A|GBd edB|cea ~a3|bag age|ged ege|dBG ABc|BGG G3:|

X:2
T:Drowsy Maggie
R:reel
M:4/4
K:Edor
|:E2BE dEBE|E2BE AFDF|E2BE dEBE|BABc dAFD:|
`

var router http.Handler

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "abcdex-e2e")
	if err != nil {
		panic(err)
	}
	os.Setenv("ABCDEX_INDEX_PATH", filepath.Join(dir, "out"))
	if err := os.WriteFile(filepath.Join(dir, "tunes.abc"), []byte(library), 0o644); err != nil {
		panic(err)
	}

	if err := cmd.Setup(""); err != nil {
		panic(err)
	}
	if _, err := cmd.Index(dir, 0); err != nil {
		panic(err)
	}
	if err := cmd.LoadServeFiles(); err != nil {
		panic(err)
	}
	router = cmd.NewRouter()

	exitVal := m.Run()
	os.RemoveAll(dir)
	os.Exit(exitVal)
}

func get(t *testing.T, path string, v any) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(respBody, v); err != nil {
		t.Fatalf("decoding %s: %v", respBody, err)
	}
	return resp.StatusCode
}

func TestSearchByKeyE2E(t *testing.T) {
	assert := assert.New(t)

	var res model.SearchResponse
	assert.Equal(200, get(t, "/tunes?key=Em", &res))
	assert.Equal(0, res.NumMatches)

	assert.Equal(200, get(t, "/tunes?key=E%20dorian", &res))
	assert.Equal(1, res.NumMatches)
	assert.Equal("Drowsy Maggie", res.Results[0].Title)
	assert.Equal("reel", res.Results[0].Type)
	assert.Equal(8, res.Results[0].NumMeasures)

	var entry model.Entry
	assert.Equal(200, get(t, "/tunes/"+res.Results[0].ID, &entry))
	assert.Equal(res.Results[0], entry)
}

func TestSearchByTitleE2E(t *testing.T) {
	assert := assert.New(t)

	var res model.SearchResponse
	assert.Equal(200, get(t, "/tunes?title=drink&limit=1", &res))
	assert.Equal(model.SearchResponse{
		Start:      0,
		NumMatches: 1,
		Results:    res.Results,
	}, res)
	assert.Equal("Gmaj", res.Results[0].Key)
	assert.Equal(32, res.Results[0].NumMeasures)
	assert.Equal("B A G E2 D | E G D E G A", res.Results[0].Incipit)
}

func TestParseE2E(t *testing.T) {
	assert := assert.New(t)

	body, _ := json.Marshal(model.ParseRequestBody{ABC: "L:1\nK:G\nG |1 A | A :|2 a | a ||"})
	req := httptest.NewRequest(http.MethodPost, "/parse", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(200, resp.StatusCode)
	var parsed model.ParseResponse
	assert.NoError(json.NewDecoder(resp.Body).Decode(&parsed))
	assert.Equal([][]string{{"G"}, {"A"}, {"A"}, {"G"}, {"a"}, {"a"}}, parsed.Measures)
}
