package kit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next Endpoint) Endpoint {
			return func(ctx context.Context, req any) (any, error) {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}
	ep := Chain(mw("a"), mw("b"), mw("c"))(func(context.Context, any) (any, error) {
		order = append(order, "endpoint")
		return nil, nil
	})
	ep(context.Background(), nil)

	want := "a,b,c,endpoint"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	ep := RequestID()(func(ctx context.Context, _ any) (any, error) {
		seen = GetRequestID(ctx)
		return nil, nil
	})

	ep(context.Background(), nil)
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("generated id %q is not a uuid: %v", seen, err)
	}

	ep(WithRequestID(context.Background(), "fixed"), nil)
	if seen != "fixed" {
		t.Errorf("request id = %q, want existing id kept", seen)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ep := Logging(logger, "compute")(func(context.Context, any) (any, error) {
		return nil, errors.New("boom")
	})
	ctx := WithTransport(WithRequestID(context.Background(), "r1"), "mcp_quic")
	if _, err := ep(ctx, nil); err == nil {
		t.Fatal("expected error to pass through")
	}

	out := buf.String()
	for _, want := range []string{"endpoint=compute", "transport=mcp_quic", "request_id=r1", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestHTTPRequestID(t *testing.T) {
	var gotID, gotTransport string
	h := HTTPRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetRequestID(r.Context())
		gotTransport = GetTransport(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(gotID); err != nil {
		t.Errorf("generated id %q: %v", gotID, err)
	}
	if w.Header().Get(RequestIDHeader) != gotID {
		t.Errorf("response header = %q, want %q", w.Header().Get(RequestIDHeader), gotID)
	}
	if gotTransport != "http" {
		t.Errorf("transport = %q, want http", gotTransport)
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if gotID != id {
		t.Errorf("request id = %q, want client id %q", gotID, id)
	}

	// Garbage ids are replaced.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if gotID == "<script>" {
		t.Error("invalid client id accepted")
	}
}

func TestGetTransportDefault(t *testing.T) {
	if got := GetTransport(context.Background()); got != "http" {
		t.Errorf("GetTransport = %q, want http", got)
	}
}

