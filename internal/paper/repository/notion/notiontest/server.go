// Package notiontest provides an in-memory Notion database served over HTTP
// for tests.
package notiontest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"zotero-notion-sync/internal/paper/repository/notion"
)

const textLimit = 2000

// Server is a fake Notion API holding a single database.
type Server struct {
	*httptest.Server

	DatabaseID string
	Token      string
	PageSize   int // rows per query page; defaults to 100

	mu      sync.Mutex
	order   []string
	pages   map[string]notion.Page
	creates int
	updates int
	queries int
	failOn  map[string]int // op -> status code
}

// NewServer starts a fake holding an empty database.
func NewServer() *Server {
	s := &Server{
		DatabaseID: strings.ReplaceAll(uuid.NewString(), "-", ""),
		Token:      "secret_test",
		pages:      make(map[string]notion.Page),
		failOn:     make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /databases/{id}/query", s.handleQuery)
	mux.HandleFunc("POST /pages", s.handleCreate)
	mux.HandleFunc("PATCH /pages/{id}", s.handleUpdate)

	s.Server = httptest.NewServer(s.authorize(mux))
	return s
}

// Seed stores a row and returns its hyphenated id.
func (s *Server) Seed(props notion.Properties) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(props)
}

// Page returns a stored row.
func (s *Server) Page(id string) (notion.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[canonical(id)]
	return p, ok
}

// Len returns the number of stored rows.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Calls returns the number of create, update and query requests served.
func (s *Server) Calls() (creates, updates, queries int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates, s.updates, s.queries
}

// ResetCalls zeroes the call counters.
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates, s.updates, s.queries = 0, 0, 0
}

// FailOn makes every request of op ("query", "create", "update") answer with status.
func (s *Server) FailOn(op string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[op] = status
}

func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.Token {
			writeError(w, http.StatusUnauthorized, "unauthorized", "API token is invalid.")
			return
		}
		if r.Header.Get("Notion-Version") == "" {
			writeError(w, http.StatusBadRequest, "missing_version", "Notion-Version header failed validation.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	if s.fail(w, "query") {
		return
	}

	if canonical(r.PathValue("id")) != canonical(s.DatabaseID) {
		writeError(w, http.StatusNotFound, "object_not_found", "Could not find database.")
		return
	}

	var req notion.QueryDatabaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	size := s.PageSize
	if size <= 0 {
		size = 100
	}
	if req.PageSize > 0 && req.PageSize < size {
		size = req.PageSize
	}

	start := 0
	if req.StartCursor != "" {
		n, err := strconv.Atoi(req.StartCursor)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", "start_cursor is invalid.")
			return
		}
		start = n
	}
	end := min(start+size, len(s.order))

	resp := notion.QueryDatabaseResponse{Object: "list", Results: []notion.Page{}}
	for _, id := range s.order[start:end] {
		resp.Results = append(resp.Results, s.pages[id])
	}
	if end < len(s.order) {
		next := strconv.Itoa(end)
		resp.NextCursor = &next
		resp.HasMore = true
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.fail(w, "create") {
		return
	}

	var req notion.CreatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if canonical(req.Parent.DatabaseID) != canonical(s.DatabaseID) {
		writeError(w, http.StatusNotFound, "object_not_found", "Could not find database.")
		return
	}
	if msg := validate(req.Properties); msg != "" {
		writeError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}

	id := s.insert(req.Properties)
	writeJSON(w, http.StatusOK, s.pages[id])
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if s.fail(w, "update") {
		return
	}

	id := canonical(r.PathValue("id"))
	page, ok := s.pages[id]
	if !ok {
		writeError(w, http.StatusNotFound, "object_not_found", "Could not find page.")
		return
	}

	var req notion.UpdatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if msg := validate(req.Properties); msg != "" {
		writeError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}

	for name, v := range req.Properties {
		page.Properties[name] = v
	}
	s.pages[id] = page
	writeJSON(w, http.StatusOK, page)
}

// insert stores a row; the caller holds mu.
func (s *Server) insert(props notion.Properties) string {
	id := uuid.NewString()
	stored := notion.Properties{
		notion.PropTitle:       {Type: notion.KindTitle},
		notion.PropAuthors:     {Type: notion.KindRichText},
		notion.PropLink:        {Type: notion.KindURL},
		notion.PropPublishedAt: {Type: notion.KindDate},
		notion.PropLibraryURL:  {Type: notion.KindURL},
		notion.PropLibraryID:   {Type: notion.KindRichText},
	}
	for name, v := range props {
		stored[name] = v
	}

	s.pages[id] = notion.Page{
		Object:     "page",
		ID:         id,
		URL:        "https://www.notion.so/" + strings.ReplaceAll(id, "-", ""),
		Properties: stored,
	}
	s.order = append(s.order, id)
	return id
}

func (s *Server) fail(w http.ResponseWriter, op string) bool {
	status, ok := s.failOn[op]
	if !ok {
		return false
	}
	writeError(w, status, "internal_server_error", op+" failed")
	return true
}

func validate(props notion.Properties) string {
	for name, v := range props {
		for _, fragments := range [][]notion.RichText{v.Title, v.RichText} {
			for _, rt := range fragments {
				if rt.Text != nil && utf8.RuneCountInString(rt.Text.Content) > textLimit {
					return fmt.Sprintf("body.properties.%s.text.content.length should be ≤ `%d`", name, textLimit)
				}
			}
		}
	}
	return ""
}

func canonical(id string) string {
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, notion.ErrorResponse{Object: "error", Status: status, Code: code, Message: message})
}
