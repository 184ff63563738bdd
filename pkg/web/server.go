package web

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pawfetch/pkg/card"
	"github.com/matzehuels/pawfetch/pkg/errors"
	"github.com/matzehuels/pawfetch/pkg/observability"
	"github.com/matzehuels/pawfetch/pkg/session"
)

// SessionCookie names the cookie that identifies a browser's card.
const SessionCookie = "pawfetch_session"

//go:embed templates/card.html
var templateFS embed.FS

var cardTemplate = template.Must(template.ParseFS(templateFS, "templates/card.html"))

// Fetcher runs one fetch cycle. [card.Fetcher] satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, seq uint64) card.Result
}

// Options configures a Server.
type Options struct {
	// Dark selects the dark palette for new sessions.
	Dark bool
	// Logger receives request and cycle diagnostics. Nil discards them.
	Logger *log.Logger
	// SessionTTL drops cards idle for longer than this. Zero keeps every
	// card until the process exits.
	SessionTTL time.Duration
}

// Server holds one card state per browser session.
//
// HTTP handlers run concurrently, so every card state is read and
// written under mu. Fetch cycles run in their own goroutines on the
// server's base context and apply their results through [card.State.Finish].
type Server struct {
	ctx      context.Context
	fetcher  Fetcher
	logger   *log.Logger
	sessions *session.Store[cardSession]

	mu     sync.Mutex
	cycles sync.WaitGroup
}

type cardSession struct {
	state   card.State
	mounted bool
}

// errCycleAbandoned stands in for a cycle result that never arrived.
var errCycleAbandoned = errors.New(errors.ErrCodeFetchCycleFailed, "fetch cycle ended without a result")

// NewServer creates a Server. Cycles started by the server, and the idle
// session sweep, stop when ctx ends.
func NewServer(ctx context.Context, fetcher Fetcher, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	theme := card.ThemeFromDark(opts.Dark)
	s := &Server{
		ctx:     ctx,
		fetcher: fetcher,
		logger:  logger,
		sessions: session.NewStore(opts.SessionTTL, func() *cardSession {
			return &cardSession{state: card.State{Theme: theme}}
		}),
	}
	if opts.SessionTTL > 0 {
		go s.sweepSessions(opts.SessionTTL)
	}
	return s
}

func (s *Server) sweepSessions(ttl time.Duration) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Cleanup(); n > 0 {
				s.logger.Debug("dropped idle sessions", "count", n)
			}
		}
	}
}

// Handler returns the HTTP handler serving all card routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleCard)
	r.Post("/dog", s.handleNewDog)
	r.Post("/theme", s.handleTheme)
	r.Get("/card.json", s.handleCardJSON)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return r
}

// Wait blocks until every fetch cycle started so far has applied its result.
func (s *Server) Wait() {
	s.cycles.Wait()
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	s.mu.Lock()
	if !sess.mounted {
		sess.mounted = true
		s.startCycle(sess)
	}
	snapshot := sess.state
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := cardTemplate.Execute(w, newCardView(snapshot)); err != nil {
		s.logger.Error("render card", "err", err)
	}
}

func (s *Server) handleNewDog(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	s.mu.Lock()
	sess.mounted = true
	s.startCycle(sess)
	s.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	s.mu.Lock()
	sess.state.ToggleTheme()
	s.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCardJSON(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	s.mu.Lock()
	snapshot := sess.state
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(newCardView(snapshot)); err != nil {
		s.logger.Error("encode card", "err", err)
	}
}

// startCycle begins a fetch cycle for sess. Callers must hold s.mu.
func (s *Server) startCycle(sess *cardSession) {
	seq := sess.state.Begin()
	s.cycles.Add(1)
	go func() {
		defer s.cycles.Done()
		res := card.Result{Seq: seq, Err: errCycleAbandoned}
		defer func() { s.finishCycle(sess, res) }()
		res = s.fetcher.Fetch(s.ctx, seq)
	}()
}

func (s *Server) finishCycle(sess *cardSession, res card.Result) {
	s.mu.Lock()
	applied := sess.state.Finish(res)
	latest := sess.state.Latest()
	s.mu.Unlock()

	if !applied {
		observability.Cycle().OnCycleDiscarded(s.ctx, res.Seq, latest)
		s.logger.Debug("discarded stale cycle", "seq", res.Seq, "latest", latest)
	}
}

// session returns the caller's card, creating one (and its cookie) on first
// contact or when the cookie names a session this process no longer holds.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *cardSession {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if sess, ok := s.sessions.Get(c.Value); ok {
			return sess
		}
	}

	id, sess := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
