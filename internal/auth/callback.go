package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Callback errors.
var (
	ErrStateMismatch  = errors.New("oauth state mismatch")
	ErrCallbackDenied = errors.New("authorization denied by provider")
)

// Result is what the provider redirect delivered.
type Result struct {
	Code  string
	State string
}

// CallbackServer runs a one-shot localhost HTTP listener for the OAuth
// redirect. It captures exactly one code/state pair, verifies the state
// nonce, and shuts down.
type CallbackServer struct {
	addr   string
	state  string
	logger zerolog.Logger

	listener net.Listener
	server   *http.Server
	results  chan Result
	errs     chan error
}

// NewCallbackServer binds the listener immediately so RedirectURI is valid
// before the browser is opened. addr may use port 0 for an ephemeral port.
func NewCallbackServer(addr string, logger zerolog.Logger) (*CallbackServer, error) {
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("binding callback listener on %s: %w", addr, err)
	}

	s := &CallbackServer{
		addr:     ln.Addr().String(),
		state:    uuid.NewString(),
		logger:   logger,
		listener: ln,
		results:  make(chan Result, 1),
		errs:     make(chan error, 1),
	}

	r := chi.NewRouter()
	r.Get("/callback", s.handleCallback)
	s.server = &http.Server{Handler: r}

	return s, nil
}

// State returns the nonce to embed in the authorization URL.
func (s *CallbackServer) State() string { return s.state }

// RedirectURI returns the redirect target registered with the provider.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://%s/callback", s.addr)
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errParam := q.Get("error"); errParam != "" {
		http.Error(w, "Authorization failed. You can close this tab.", http.StatusBadRequest)
		s.fail(fmt.Errorf("%w: %s", ErrCallbackDenied, errParam))
		return
	}
	if q.Get("state") != s.state {
		http.Error(w, "State mismatch. You can close this tab.", http.StatusBadRequest)
		s.fail(ErrStateMismatch)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><h2>Login complete</h2><p>You can close this tab and return to the terminal.</p></body></html>")

	select {
	case s.results <- Result{Code: q.Get("code"), State: q.Get("state")}:
	default: // already captured one; late duplicates are dropped
	}
}

func (s *CallbackServer) fail(err error) {
	select {
	case s.errs <- err:
	default:
	}
}

// Wait serves until the first redirect arrives or ctx is done, then shuts the
// server down. It is the only method that consumes the listener.
func (s *CallbackServer) Wait(ctx context.Context) (Result, error) {
	go func() {
		if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.fail(fmt.Errorf("callback server: %w", err))
		}
	}()
	defer s.shutdown()

	select {
	case res := <-s.results:
		s.logger.Debug().Str("state", res.State).Msg("oauth callback captured")
		return res, nil
	case err := <-s.errs:
		return Result{}, err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (s *CallbackServer) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("callback server shutdown")
	}
}
