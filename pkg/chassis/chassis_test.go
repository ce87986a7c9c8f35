package chassis

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hazyhaar/wordcalc/pkg/mcpquic"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestDevelopmentTLSConfig(t *testing.T) {
	cfg, err := DevelopmentTLSConfig()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{ALPNHTTP3, mcpquic.ALPNProtocolMCP}
	if len(cfg.NextProtos) != len(want) {
		t.Fatalf("NextProtos = %v, want %v", cfg.NextProtos, want)
	}
	for i := range want {
		if cfg.NextProtos[i] != want[i] {
			t.Errorf("NextProtos[%d] = %q, want %q", i, cfg.NextProtos[i], want[i])
		}
	}
	if len(cfg.Certificates) != 1 {
		t.Errorf("certificates = %d, want 1", len(cfg.Certificates))
	}
}

func TestProductionTLSConfigMissingFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := ProductionTLSConfig(dir+"/cert.pem", dir+"/key.pem"); err == nil {
		t.Fatal("expected error for missing cert files")
	}
}

func TestNewRequiresHandler(t *testing.T) {
	if _, err := New(Config{Addr: ":0", Logger: discard()}); err == nil {
		t.Fatal("expected error for nil handler")
	}
}

func TestHandlerHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	s, err := New(Config{Addr: "127.0.0.1:9443", Handler: inner, Logger: discard()})
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want inner handler status", rec.Code)
	}
	if got := rec.Header().Get("Alt-Svc"); got != `h3=":9443"; ma=86400` {
		t.Errorf("Alt-Svc = %q", got)
	}
	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("missing header %s", h)
		}
	}
}

func TestAltSvcDefaultPort(t *testing.T) {
	rec := httptest.NewRecorder()
	altSvcMiddleware("", http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get("Alt-Svc"); got != `h3=":8443"; ma=86400` {
		t.Errorf("Alt-Svc = %q", got)
	}
}
