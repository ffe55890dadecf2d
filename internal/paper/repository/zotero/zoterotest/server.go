// Package zoterotest provides an in-memory Zotero group library served over
// HTTP for tests.
package zoterotest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"zotero-notion-sync/internal/paper/repository/zotero"
)

// Server is a fake Zotero Web API holding a single group library.
type Server struct {
	*httptest.Server

	GroupID int64
	APIKey  string

	mu      sync.Mutex
	version int
	order   []string
	items   map[string]zotero.Item
	creates int
	updates int
	failOn  map[string]int // op -> status code
}

// NewServer starts a fake holding an empty group library.
func NewServer(groupID int64) *Server {
	s := &Server{
		GroupID: groupID,
		APIKey:  "zotero-test-key",
		items:   make(map[string]zotero.Item),
		failOn:  make(map[string]int),
	}

	prefix := "/groups/" + s.LibraryID()
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+prefix+"/items/top", s.handleTop)
	mux.HandleFunc("GET "+prefix+"/items", s.handleItems)
	mux.HandleFunc("GET "+prefix+"/items/{key}/children", s.handleChildren)
	mux.HandleFunc("POST "+prefix+"/items", s.handleCreate)
	mux.HandleFunc("PATCH "+prefix+"/items/{key}", s.handleUpdate)

	s.Server = httptest.NewServer(s.authorize(mux))
	return s
}

// LibraryID is the group id as used in configuration.
func (s *Server) LibraryID() string {
	return strconv.FormatInt(s.GroupID, 10)
}

// AddItem stores an item and returns its key. A key is minted when data.Key is empty.
func (s *Server) AddItem(data zotero.ItemData) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(data)
}

// Item returns a stored item.
func (s *Server) Item(key string) (zotero.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[key]
	return it, ok
}

// SetNote replaces the body of a stored note.
func (s *Server) SetNote(key, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.items[key]
	it.Data.Note = body
	s.bump(&it)
	s.items[key] = it
}

// ChildrenOf returns the children of key in insertion order.
func (s *Server) ChildrenOf(key string) []zotero.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(it zotero.Item) bool { return it.Data.ParentItem == key })
}

// Calls returns the number of create and update requests served.
func (s *Server) Calls() (creates, updates int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates, s.updates
}

// ResetCalls zeroes the call counters.
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates, s.updates = 0, 0
}

// FailOn makes every request of op ("top", "items", "children", "create",
// "update") answer with status.
func (s *Server) FailOn(op string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[op] = status
}

func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.APIKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if r.Header.Get("Zotero-API-Version") != "3" {
			http.Error(w, "Unsupported API version", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, "top", func(it zotero.Item) bool { return it.Data.ParentItem == "" })
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	itemType := r.URL.Query().Get("itemType")
	s.list(w, r, "items", func(it zotero.Item) bool {
		return itemType == "" || it.Data.ItemType == itemType
	})
}

func (s *Server) handleChildren(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	s.mu.Lock()
	_, ok := s.items[key]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	s.list(w, r, "children", func(it zotero.Item) bool { return it.Data.ParentItem == key })
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, op string, keep func(zotero.Item) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail(w, op) {
		return
	}

	start, _ := strconv.Atoi(r.URL.Query().Get("start"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 25
	}

	all := s.filter(keep)
	start = min(start, len(all))
	end := min(start+limit, len(all))

	w.Header().Set("Total-Results", strconv.Itoa(len(all)))
	w.Header().Set("Last-Modified-Version", strconv.Itoa(s.version))
	writeJSON(w, http.StatusOK, all[start:end])
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.fail(w, "create") {
		return
	}

	var batch []zotero.ItemData
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := zotero.WriteResponse{
		Successful: map[string]zotero.Item{},
		Success:    map[string]string{},
		Unchanged:  map[string]string{},
		Failed:     map[string]zotero.WriteFailure{},
	}
	for i, data := range batch {
		idx := strconv.Itoa(i)
		if data.ParentItem != "" {
			if _, ok := s.items[data.ParentItem]; !ok {
				resp.Failed[idx] = zotero.WriteFailure{Code: 400, Message: "Parent item " + data.ParentItem + " not found"}
				continue
			}
		}
		key := s.insert(data)
		resp.Successful[idx] = s.items[key]
		resp.Success[idx] = key
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if s.fail(w, "update") {
		return
	}

	key := r.PathValue("key")
	it, ok := s.items[key]
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Header.Get("If-Unmodified-Since-Version") != strconv.Itoa(it.Version) {
		http.Error(w, "Item has been modified since specified version", http.StatusPreconditionFailed)
		return
	}

	var data zotero.ItemData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if data.Note != "" {
		it.Data.Note = data.Note
	}
	if data.Tags != nil {
		it.Data.Tags = data.Tags
	}
	s.bump(&it)
	s.items[key] = it
	w.WriteHeader(http.StatusNoContent)
}

// insert stores data; the caller holds mu.
func (s *Server) insert(data zotero.ItemData) string {
	key := data.Key
	if key == "" {
		key = strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	}
	if data.Tags == nil {
		data.Tags = []zotero.Tag{}
	}
	data.Key = key

	it := zotero.Item{
		Key:     key,
		Library: zotero.Library{Type: "group", ID: s.GroupID, Name: "Test group"},
		Data:    data,
	}
	s.bump(&it)
	s.items[key] = it
	s.order = append(s.order, key)
	return key
}

func (s *Server) bump(it *zotero.Item) {
	s.version++
	it.Version = s.version
	it.Data.Version = s.version
}

func (s *Server) filter(keep func(zotero.Item) bool) []zotero.Item {
	out := []zotero.Item{}
	for _, key := range s.order {
		if it := s.items[key]; keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (s *Server) fail(w http.ResponseWriter, op string) bool {
	status, ok := s.failOn[op]
	if !ok {
		return false
	}
	http.Error(w, op+" failed", status)
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
