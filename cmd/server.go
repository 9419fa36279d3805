package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/jsphweid/abcdex/catalog"
	"github.com/jsphweid/abcdex/key"
	"github.com/jsphweid/abcdex/model"
	"github.com/jsphweid/abcdex/tune"
)

const maxBodyBytes = 1 << 20

var (
	catalogMu sync.RWMutex
	loaded    = &catalog.Catalog{}
)

// LoadServeFiles reads the catalog the tune routes serve. A missing
// catalog leaves them empty.
func LoadServeFiles() error {
	path := catalog.Path(cfg.IndexPath)
	c, err := catalog.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("no catalog, tune routes will be empty", "path", path)
		c = &catalog.Catalog{}
	} else if err != nil {
		return err
	}
	catalogMu.Lock()
	loaded = c
	catalogMu.Unlock()
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("could not write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

// HandleParse parses the tune in the request body.
func HandleParse(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var input model.ParseRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	t, ws, err := tune.Parse(input.ABC)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	ws.Log(logger, "route", "parse")
	writeJSON(w, http.StatusOK, parseView(t, ws))
}

func HandleKey(w http.ResponseWriter, r *http.Request) {
	k, ws, err := key.Parse(mux.Vars(r)["spec"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, keyView(k, ws))
}

func HandlePitch(w http.ResponseWriter, r *http.Request) {
	p, _, err := lookupPitch(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, pitchView(p))
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return fallback, nil
	}
	return strconv.Atoi(s)
}

// HandleTunes searches the catalog with the title, key, type, start and
// limit query parameters.
func HandleTunes(w http.ResponseWriter, r *http.Request) {
	start, err := queryInt(r, "start", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	limit, err := queryInt(r, "limit", 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	q := catalog.Query{
		Title: r.URL.Query().Get("title"),
		Key:   r.URL.Query().Get("key"),
		Type:  r.URL.Query().Get("type"),
		Start: start,
		Limit: limit,
	}

	catalogMu.RLock()
	results, total, err := loaded.Search(q)
	catalogMu.RUnlock()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if results == nil {
		results = []model.Entry{}
	}
	writeJSON(w, http.StatusOK, model.SearchResponse{Start: start, NumMatches: total, Results: results})
}

func HandleTune(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	catalogMu.RLock()
	e, ok := loaded.Get(id)
	catalogMu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("no tune with id "+strconv.Quote(id)))
		return
	}
	writeJSON(w, http.StatusOK, e)
}
