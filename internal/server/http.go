package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/darilrt/ripl/internal/ast"
	"github.com/darilrt/ripl/internal/frontend"
	"github.com/darilrt/ripl/internal/parser"
	"github.com/darilrt/ripl/internal/token"
	"github.com/darilrt/ripl/internal/types"
	"github.com/goccy/go-json"
)

const (
	parsesPath = "/v1/parses"
	tokensPath = "/v1/tokens"

	maxSourceBytes = 1 << 20
)

type parseResult struct {
	seq uint64

	Name       string    `json:"name"`
	CreateTime time.Time `json:"createTime"`
	Source     string    `json:"source"`
	State      string    `json:"state"`
	AST        *ast.AST  `json:"ast,omitempty"`
	Error      any       `json:"error,omitempty"`
}

type httpHandler struct {
	idBase  uint64
	parses  sync.Map
	options []parser.Option
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == parsesPath:
		switch r.Method {
		case http.MethodGet:
			h.listParses(w, r)
		case http.MethodPost:
			h.createParse(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}

	case strings.HasPrefix(r.URL.Path, parsesPath+"/"):
		id := strings.TrimPrefix(r.URL.Path, parsesPath+"/")
		if id == "" || strings.Contains(id, "/") {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.getParse(w, r, id)

	case r.URL.Path == tokensPath:
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.tokenize(w, r)

	default:
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

func (h *httpHandler) createParse(w http.ResponseWriter, r *http.Request) {
	source, ok := readSource(w, r)
	if !ok {
		return
	}

	opts := h.options
	if s := r.URL.Query().Get("strict"); s != "" {
		strict, err := strconv.ParseBool(s)
		if err != nil {
			log.Printf("invalid strict parameter %q: %v", s, err)
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		if strict {
			opts = append(opts[:len(opts):len(opts)], parser.WithStrictEnd())
		}
	}

	seq := atomic.AddUint64(&h.idBase, 1)
	id := fmt.Sprintf("%012x", seq)
	result := &parseResult{
		seq:        seq,
		Name:       parsesPath + "/" + id,
		CreateTime: time.Now().UTC(),
		Source:     source,
	}

	tree, err := frontend.Parse(source, opts...)
	if err != nil {
		result.State = "FAILED"
		result.Error = exceptionOf(err)
	} else {
		result.State = "SUCCEEDED"
		result.AST = tree
	}

	h.parses.Store(id, result)
	if err := resJSON(w, http.StatusOK, result); err != nil {
		log.Printf("failed to write parse result: %v", err)
	}
}

func (h *httpHandler) listParses(w http.ResponseWriter, r *http.Request) {
	results := []*parseResult{}
	h.parses.Range(func(key, value any) bool {
		results = append(results, value.(*parseResult))
		return true
	})
	sort.Slice(results, func(i, j int) bool {
		return results[i].seq < results[j].seq
	})

	if err := resJSON(w, http.StatusOK, map[string][]*parseResult{"parses": results}); err != nil {
		log.Printf("failed to write parse list: %v", err)
	}
}

func (h *httpHandler) getParse(w http.ResponseWriter, r *http.Request, id string) {
	ret, ok := h.parses.Load(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if err := resJSON(w, http.StatusOK, ret.(*parseResult)); err != nil {
		log.Printf("failed to write parse result: %v", err)
	}
}

func (h *httpHandler) tokenize(w http.ResponseWriter, r *http.Request) {
	source, ok := readSource(w, r)
	if !ok {
		return
	}

	if err := resJSON(w, http.StatusOK, map[string][]token.Token{"tokens": frontend.Tokenize(source)}); err != nil {
		log.Printf("failed to write tokens: %v", err)
	}
}

func readSource(w http.ResponseWriter, r *http.Request) (string, bool) {
	defer r.Body.Close()

	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSourceBytes))
	if err != nil {
		log.Printf("failed to read request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return "", false
	}
	return string(b), true
}

func exceptionOf(err error) any {
	var exception types.Exception
	if errors.As(err, &exception) {
		return exception.Exception()
	}
	return err.Error()
}

func NewHTTPHandler(opts ...parser.Option) http.Handler {
	return &httpHandler{options: opts}
}

func resJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
