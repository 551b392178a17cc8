// Package gatewayfake is an in-memory stand-in for the restaurant platform
// REST backend, served over net/http for tests.
package gatewayfake

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// User is an account the fake backend accepts at auth/login/
type User struct {
	ID       int
	Email    string
	Password string
	Role     string
}

// Request is a recorded call
type Request struct {
	Method string
	Path   string
	Auth   string
}

type collection struct {
	records   map[int]map[string]any
	nextID    int
	bareArray bool
}

type failure struct {
	method string
	status int
	body   string
}

// Backend serves auth/login/, auth/logout/ and one REST collection per
// registered name under Prefix.
type Backend struct {
	Prefix string

	lock        sync.RWMutex
	users       map[string]User
	tokens      map[string]int    // access token -> user id
	refresh     map[string]string // refresh token -> access token
	collections map[string]*collection
	failures    map[string]failure // collection name -> injected failure
	requests    []Request
	logoutFails bool
}

func New() *Backend {
	return &Backend{
		Prefix:      "/api/",
		users:       make(map[string]User),
		tokens:      make(map[string]int),
		refresh:     make(map[string]string),
		collections: make(map[string]*collection),
		failures:    make(map[string]failure),
	}
}

func (b *Backend) AddUser(u User) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.users[u.Email] = u
}

// AddCollection registers a collection. bareArray collections ignore paging
// and return the whole set as a JSON array.
func (b *Backend) AddCollection(name string, bareArray bool) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.collections[name] = &collection{records: make(map[int]map[string]any), nextID: 1, bareArray: bareArray}
}

// Seed inserts records and returns their ids
func (b *Backend) Seed(name string, records ...map[string]any) []int {
	b.lock.Lock()
	defer b.lock.Unlock()
	c := b.collections[name]
	ids := make([]int, 0, len(records))
	for _, r := range records {
		ids = append(ids, c.insert(r))
	}
	return ids
}

// IDs returns the ids currently stored in a collection, sorted
func (b *Backend) IDs(name string) []int {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.collections[name].sortedIDs()
}

// Fail makes every request with method against the collection return status
func (b *Backend) Fail(name, method string, status int, body string) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.failures[name] = failure{method: method, status: status, body: body}
}

func (b *Backend) ClearFailures() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.failures = make(map[string]failure)
}

// FailLogout makes auth/logout/ return 500
func (b *Backend) FailLogout(fail bool) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.logoutFails = fail
}

// RevokeAll invalidates every issued token, later calls get 401
func (b *Backend) RevokeAll() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.tokens = make(map[string]int)
	b.refresh = make(map[string]string)
}

// RefreshTokenValid reports whether a refresh token is still live
func (b *Backend) RefreshTokenValid(token string) bool {
	b.lock.RLock()
	defer b.lock.RUnlock()
	_, ok := b.refresh[token]
	return ok
}

// Requests returns a copy of the recorded requests
func (b *Backend) Requests() []Request {
	b.lock.RLock()
	defer b.lock.RUnlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// CountRequests counts recorded requests by method and path prefix
func (b *Backend) CountRequests(method, pathPrefix string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && strings.HasPrefix(r.Path, pathPrefix) {
			n++
		}
	}
	return n
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.lock.Lock()
	b.requests = append(b.requests, Request{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")})
	b.lock.Unlock()

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, b.Prefix), "/")
	switch {
	case path == "auth/login" && r.Method == http.MethodPost:
		b.login(w, r)
		return
	case path == "auth/logout" && r.Method == http.MethodPost:
		b.logout(w, r)
		return
	}

	if !b.authenticated(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided."})
		return
	}

	parts := strings.Split(path, "/")
	b.lock.RLock()
	_, known := b.collections[parts[0]]
	fail, failing := b.failures[parts[0]]
	b.lock.RUnlock()
	if !known || len(parts) > 2 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	if failing && fail.method == r.Method {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fail.status)
		_, _ = w.Write([]byte(fail.body))
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			b.list(w, r, parts[0])
		case http.MethodPost:
			b.create(w, r, parts[0])
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := strconv.Atoi(parts[1])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	switch r.Method {
	case http.MethodGet:
		b.get(w, parts[0], id)
	case http.MethodPut:
		b.update(w, r, parts[0], id)
	case http.MethodDelete:
		b.delete(w, parts[0], id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (b *Backend) authenticated(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	_, ok = b.tokens[token]
	return ok
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request."})
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()
	u, ok := b.users[creds.Email]
	if !ok || u.Password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
		return
	}
	access := "access-" + uuid.New().String()
	refresh := "refresh-" + uuid.New().String()
	b.tokens[access] = u.ID
	b.refresh[refresh] = access
	writeJSON(w, http.StatusOK, map[string]any{
		"access":  access,
		"refresh": refresh,
		"role":    u.Role,
		"user_id": u.ID,
	})
}

func (b *Backend) logout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Refresh string `json:"refresh"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	b.lock.Lock()
	defer b.lock.Unlock()
	if b.logoutFails {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "logout failed"})
		return
	}
	if access, ok := b.refresh[body.Refresh]; ok {
		delete(b.tokens, access)
		delete(b.refresh, body.Refresh)
	}
	w.WriteHeader(http.StatusResetContent)
}

func (b *Backend) list(w http.ResponseWriter, r *http.Request, name string) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	c := b.collections[name]

	records := make([]map[string]any, 0, len(c.records))
	for _, id := range c.sortedIDs() {
		records = append(records, c.records[id])
	}
	if c.bareArray {
		writeJSON(w, http.StatusOK, records)
		return
	}

	page := atoiDefault(r.URL.Query().Get("page"), 1)
	size := atoiDefault(r.URL.Query().Get("page_size"), 10)
	offset := (page - 1) * size
	if page < 1 || (offset >= len(records) && !(page == 1 && len(records) == 0)) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Invalid page."})
		return
	}
	end := min(offset+size, len(records))

	var next, previous any
	if end < len(records) {
		next = r.URL.Path + "?page=" + strconv.Itoa(page+1)
	}
	if page > 1 {
		previous = r.URL.Path + "?page=" + strconv.Itoa(page-1)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(records),
		"next":     next,
		"previous": previous,
		"results":  records[offset:end],
	})
}

func (b *Backend) get(w http.ResponseWriter, name string, id int) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	rec, ok := b.collections[name].records[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (b *Backend) create(w http.ResponseWriter, r *http.Request, name string) {
	var rec map[string]any
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request."})
		return
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	id := b.collections[name].insert(rec)
	writeJSON(w, http.StatusCreated, b.collections[name].records[id])
}

func (b *Backend) update(w http.ResponseWriter, r *http.Request, name string, id int) {
	var rec map[string]any
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request."})
		return
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	c := b.collections[name]
	if _, ok := c.records[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	rec["id"] = id
	c.records[id] = rec
	writeJSON(w, http.StatusOK, rec)
}

func (b *Backend) delete(w http.ResponseWriter, name string, id int) {
	b.lock.Lock()
	defer b.lock.Unlock()
	c := b.collections[name]
	if _, ok := c.records[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	delete(c.records, id)
	w.WriteHeader(http.StatusNoContent)
}

func (c *collection) insert(rec map[string]any) int {
	id := c.nextID
	c.nextID++
	copied := make(map[string]any, len(rec)+1)
	for k, v := range rec {
		copied[k] = v
	}
	copied["id"] = id
	c.records[id] = copied
	return id
}

func (c *collection) sortedIDs() []int {
	ids := make([]int, 0, len(c.records))
	for id := range c.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
