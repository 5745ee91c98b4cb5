package auth

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/http"
	"time"
)

// callbackAddr and callbackPath are fixed: the redirect URI registered with
// the authorization server must match them exactly.
const (
	callbackAddr = "localhost:8080"
	callbackPath = "/callback"
)

const successPage = `<html><body><h1>Authorization successful!</h1><p>You can close this window and return to the terminal.</p></body></html>`

// CallbackServer is a single-shot HTTP listener for the OAuth redirect.
// It serves exactly one callback request; the result is handed to the waiting
// caller over a one-slot channel, and the socket is released on both the
// success and timeout paths.
type CallbackServer struct {
	ln     net.Listener
	srv    *http.Server
	result chan Callback
}

// StartCallbackServer binds the listener and begins serving in the
// background. Pass an empty addr to bind the fixed localhost:8080 address;
// tests may pass "127.0.0.1:0".
func StartCallbackServer(addr string) (*CallbackServer, error) {
	if addr == "" {
		addr = callbackAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("binding callback listener: %w", err)
	}

	s := &CallbackServer{
		ln:     ln,
		result: make(chan Callback, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, s.handleCallback)
	s.srv = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() { _ = s.srv.Serve(ln) }()

	return s, nil
}

// Addr returns the bound listener address, e.g. "127.0.0.1:8080".
func (s *CallbackServer) Addr() string {
	return s.ln.Addr().String()
}

// Wait blocks until the first callback arrives or ctx expires. The listener
// is shut down before Wait returns on either path; no further requests are
// accepted afterward.
func (s *CallbackServer) Wait(ctx context.Context) (Callback, error) {
	defer s.Close()
	select {
	case cb := <-s.result:
		return cb, nil
	case <-ctx.Done():
		return Callback{}, ErrCallbackTimeout
	}
}

// Close stops the listener immediately. Safe to call more than once.
func (s *CallbackServer) Close() error {
	return s.srv.Close()
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var cb Callback
	if r.Method == http.MethodGet && q.Get("code") != "" {
		cb.Code = q.Get("code")
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, successPage)
	} else {
		cb.Err = q.Get("error")
		if cb.Err == "" {
			cb.Err = "Unknown error"
		}
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, `<html><body><h1>Authorization failed</h1><p>Error: %s</p></body></html>`, html.EscapeString(cb.Err))
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	// Only the first request counts; later ones still get a page but their
	// result is dropped.
	select {
	case s.result <- cb:
	default:
	}
}
