package testkit

import (
	"testing"

	"github.com/shashiranjanraj/bodega/pkg/httpclient"
)

// Install builds a StubTransport, wires it onto the shared HTTP client and
// restores the real transport when the test finishes.
func Install(t *testing.T, stubs ...Stub) *StubTransport {
	t.Helper()
	st := NewStubTransport(stubs...)
	httpclient.DefaultClient.Transport = st
	t.Cleanup(httpclient.ResetTransport)
	return st
}
