package session

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/bodega/pkg/logger"
)

// googleTimeout bounds how long we wait for the browser round trip.
const googleTimeout = 3 * time.Minute

// LoginWithGoogle runs the browser-based OAuth flow: it starts a loopback
// callback server, sends the user's browser to the backend's Google entry
// point and waits for the redirect back. The callback must carry a `token`
// query parameter; a missing token, a closed browser or a verification
// failure all count as a failed login with no side effects.
func (m *Manager) LoginWithGoogle(ctx context.Context, listenAddr string) bool {
	ctx, cancel := context.WithTimeout(ctx, googleTimeout)
	defer cancel()

	tokens := make(chan string, 1)

	r := chi.NewRouter()
	r.Get("/auth/callback", func(w http.ResponseWriter, req *http.Request) {
		tok := req.URL.Query().Get("token")
		if tok == "" {
			http.Error(w, "login cancelled: no token in callback", http.StatusBadRequest)
		} else {
			fmt.Fprintln(w, "Signed in. You can close this tab and return to the terminal.")
		}
		select {
		case tokens <- tok:
		default:
		}
	})

	srv := &http.Server{Addr: listenAddr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("session: oauth callback server stopped", "error", err)
			select {
			case tokens <- "":
			default:
			}
		}
	}()
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
		defer stop()
		_ = srv.Shutdown(shutdownCtx)
	}()

	callbackURL := "http://" + listenAddr + "/auth/callback"
	authURL := m.gw.GoogleLoginURL() + "?redirect_url=" + callbackURL

	if err := openBrowser(authURL); err != nil {
		// Headless box: the user can still paste the URL themselves.
		fmt.Printf("Open this URL to sign in with Google:\n\n  %s\n\n", authURL)
	}

	var tok string
	select {
	case tok = <-tokens:
	case <-ctx.Done():
		logger.Warn("session: google login timed out")
		return false
	}
	if tok == "" {
		return false
	}

	// Verify before committing; an unverifiable callback token is discarded.
	user, err := m.gw.VerifyToken(ctx, tok)
	if err != nil {
		logger.Warn("session: google token rejected", "error", err)
		return false
	}

	return m.commit(tok, *user)
}

// openBrowser launches the platform browser at url.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
