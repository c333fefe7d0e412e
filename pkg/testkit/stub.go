// Package testkit provides an HTTP stubbing harness for gateway and session
// tests.
//
// StubTransport implements http.RoundTripper: it matches outgoing requests
// against registered stubs and returns synthetic responses instead of making
// real network calls. Install wires it onto the shared client and restores
// the real transport when the test ends:
//
//	st := testkit.Install(t,
//	    testkit.Stub{Method: "POST", Path: "/api/auth/login", Status: 401,
//	        Body: `{"detail":"Incorrect email or password"}`},
//	)
//	// ... exercise code ...
//	st.AssertCalled(t, "POST", "/api/auth/login")
package testkit

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Stub describes one canned response.
type Stub struct {
	Method string // empty matches any method
	Path   string // prefix-matched against the request URL path; empty matches any
	Status int    // defaults to 200
	Body   string // response body, usually JSON
	Fail   bool   // when true the round trip returns a transport error instead
}

// Call records one intercepted request.
type Call struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          string
}

type stubEntry struct {
	stub  Stub
	count int
}

// StubTransport intercepts requests on httpclient.DefaultClient.
type StubTransport struct {
	mu    sync.Mutex
	stubs []*stubEntry
	calls []Call
}

// NewStubTransport builds a transport from the given stubs. Stubs are tried
// in order; the first match wins.
func NewStubTransport(stubs ...Stub) *StubTransport {
	st := &StubTransport{}
	for _, s := range stubs {
		st.stubs = append(st.stubs, &stubEntry{stub: s})
	}
	return st
}

// Add registers another stub after construction.
func (st *StubTransport) Add(s Stub) {
	st.mu.Lock()
	st.stubs = append(st.stubs, &stubEntry{stub: s})
	st.mu.Unlock()
}

// RoundTrip matches the request against the stubs and returns a synthetic
// response. An unmatched request is an error: tests must declare every
// outgoing call.
func (st *StubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body string
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		req.Body.Close()
		body = string(raw)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.calls = append(st.calls, Call{
		Method:        req.Method,
		Path:          req.URL.Path,
		Query:         req.URL.RawQuery,
		Authorization: req.Header.Get("Authorization"),
		Body:          body,
	})

	for _, e := range st.stubs {
		if e.stub.Method != "" && e.stub.Method != req.Method {
			continue
		}
		if e.stub.Path != "" && !strings.HasPrefix(req.URL.Path, e.stub.Path) {
			continue
		}

		e.count++
		if e.stub.Fail {
			return nil, errors.New("testkit: simulated transport failure")
		}
		return buildResponse(req, e.stub), nil
	}

	return nil, fmt.Errorf("testkit: unexpected outgoing call %s %s — no matching stub", req.Method, req.URL)
}

func buildResponse(req *http.Request, s Stub) *http.Response {
	code := s.Status
	if code == 0 {
		code = http.StatusOK
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(s.Body)),
		Request:    req,
	}
}

// Calls returns every intercepted request in order.
func (st *StubTransport) Calls() []Call {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]Call, len(st.calls))
	copy(out, st.calls)
	return out
}

// LastCall returns the most recent intercepted request.
func (st *StubTransport) LastCall() (Call, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if len(st.calls) == 0 {
		return Call{}, false
	}
	return st.calls[len(st.calls)-1], true
}

// CallCount returns how many requests matched the given method and path prefix.
func (st *StubTransport) CallCount(method, path string) int {
	n := 0
	for _, c := range st.Calls() {
		if (method == "" || c.Method == method) && strings.HasPrefix(c.Path, path) {
			n++
		}
	}
	return n
}

// AssertCalled fails the test unless at least one request matched.
func (st *StubTransport) AssertCalled(t *testing.T, method, path string) {
	t.Helper()
	assert.Greater(t, st.CallCount(method, path), 0,
		"expected an outgoing %s %s call", method, path)
}

// AssertNotCalled fails the test if any request matched.
func (st *StubTransport) AssertNotCalled(t *testing.T, method, path string) {
	t.Helper()
	assert.Equal(t, 0, st.CallCount(method, path),
		"expected no outgoing %s %s call", method, path)
}

// AssertAllStubsUsed fails the test if any stub never matched a request.
func (st *StubTransport) AssertAllStubsUsed(t *testing.T) {
	t.Helper()
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, e := range st.stubs {
		assert.Greater(t, e.count, 0,
			"stub %s %s was never hit", e.stub.Method, e.stub.Path)
	}
}
