// Package server hosts the local web UI: an upload form for the life list
// CSV, a proxied county list, and the optimization report. All session
// state lives in one Session value that is replaced wholesale on each file
// upload or query; the previous report is dropped before the new one is
// installed so repeated queries never accumulate stale view data.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kestrelworks/listr-cli/internal/lifelist"
	"github.com/kestrelworks/listr-cli/internal/optimizer"
	"github.com/kestrelworks/listr-cli/internal/report"
)

// maxUploadBytes caps life-list uploads; eBird exports are a few MB at most.
const maxUploadBytes = 32 << 20

// Session is the current state of the single local user.
type Session struct {
	ID       string
	List     *lifelist.List
	Parse    lifelist.ParseReport
	Report   *report.View
	LoadedAt time.Time
}

// Server wires the handlers. At most one optimize call is in flight at a
// time; a second request while one is outstanding is rejected rather than
// queued.
type Server struct {
	client *optimizer.Client
	opts   report.Options
	mux    *http.ServeMux

	mu      sync.Mutex
	session *Session

	inFlight chan struct{}
}

// New returns a server backed by the given optimizer client.
func New(client *optimizer.Client, opts report.Options) *Server {
	s := &Server{
		client:   client,
		opts:     opts,
		mux:      http.NewServeMux(),
		inFlight: make(chan struct{}, 1),
	}
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/api/counties", s.handleCounties)
	s.mux.HandleFunc("/api/lifelist", s.handleLifeList)
	s.mux.HandleFunc("/api/optimize", s.handleOptimize)
	s.mux.HandleFunc("/report", s.handleReport)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, nil); err != nil {
		http.Error(w, "render index", http.StatusInternalServerError)
	}
}

// handleCounties proxies the service's county list. On failure the error is
// passed through; the page leaves the region control unpopulated.
func (s *Server) handleCounties(w http.ResponseWriter, r *http.Request) {
	counties, err := s.client.Counties(r.Context())
	if err != nil {
		writeDetail(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, counties)
}

// handleLifeList ingests an uploaded CSV and replaces the session wholesale.
// An unusable CSV (missing header, no Common Name column) is not an error:
// it produces an empty list and the page reports zero species loaded.
func (s *Server) handleLifeList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("read upload: %v", err))
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("read upload: %v", err))
		return
	}

	list, parseRep := lifelist.Parse(string(content))
	sess := &Session{
		ID:       uuid.New().String(),
		List:     list,
		Parse:    parseRep,
		LoadedAt: time.Now(),
	}
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"species":    list.Len(),
		"rows":       parseRep.Rows,
		"duplicates": parseRep.Duplicates,
		"excluded":   parseRep.ExcludedGroups + parseRep.ExcludedHybrids,
	})
}

type optimizeParams struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	K         int    `json:"k"`
	County    string `json:"county"`
}

// handleOptimize runs one optimization for the current session. Service
// failures surface as a single detail message; the in-flight slot is always
// released so the next attempt is never locked out.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var params optimizeParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}

	s.mu.Lock()
	sess := s.session
	s.mu.Unlock()
	if sess == nil {
		writeDetail(w, http.StatusBadRequest, "no life list loaded")
		return
	}

	select {
	case s.inFlight <- struct{}{}:
	default:
		writeDetail(w, http.StatusConflict, "an optimization is already running")
		return
	}
	defer func() { <-s.inFlight }()

	req := optimizer.NewRequest(sess.List, params.StartDate, params.EndDate, params.K, params.County)
	resp, err := s.client.Optimize(r.Context(), req)
	if err != nil {
		writeDetail(w, statusForError(err), err.Error())
		return
	}

	view := report.Build(resp, s.opts)
	s.mu.Lock()
	if s.session == sess {
		sess.Report = view
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "empty": view.Empty})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	// Report is written under s.mu by handleOptimize, so it must be read
	// under the same lock before rendering.
	s.mu.Lock()
	var view *report.View
	if s.session != nil {
		view = s.session.Report
	}
	s.mu.Unlock()
	if view == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.WriteHTML(w, view); err != nil {
		http.Error(w, "render report", http.StatusInternalServerError)
	}
}

// statusForError passes the service's own 4xx status through so the page
// can tell a rejected request from an unreachable service.
func statusForError(err error) int {
	var badReq *optimizer.BadRequestError
	if errors.As(err, &badReq) {
		return badReq.StatusCode
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
