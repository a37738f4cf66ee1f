// Package slacktest provides a fake Slack Web API for tests.
package slacktest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sts1992/mcp/pkg/config"
)

// Server is a fake Slack Web API serving canned JSON bodies per method
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]string
	calls     map[string]int
	forms     map[string]url.Values
}

// NewServer starts a fake API. Unregistered methods answer {"ok":false,"error":"unknown_method"}.
func NewServer() *Server {
	s := &Server{
		responses: map[string]string{},
		calls:     map[string]int{},
		forms:     map[string]url.Values{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Handle registers the body returned for a Web API method such as "chat.postMessage"
func (s *Server) Handle(method, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[method] = body
}

// Calls returns how many times method was called
func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// TotalCalls returns the number of requests received
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// LastForm returns the parameters of the last call to method
func (s *Server) LastForm(method string) url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forms[method]
}

// Config returns a Slack configuration pointing at the fake
func (s *Server) Config(token string) config.Slack {
	return config.Slack{
		BotToken: token,
		APIURL:   s.URL + "/",
		Timeout:  5 * time.Second,
	}
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	method := strings.TrimPrefix(r.URL.Path, "/")
	_ = r.ParseForm()

	s.mu.Lock()
	s.calls[method]++
	s.forms[method] = r.Form
	body, ok := s.responses[method]
	s.mu.Unlock()

	if !ok {
		body = `{"ok":false,"error":"unknown_method"}`
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}
