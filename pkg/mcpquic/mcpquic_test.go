package mcpquic

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/wordcalc/pkg/kit"
)

func TestMagicBytesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := SendMagicBytes(&buf); err != nil {
		t.Fatal(err)
	}
	if err := ValidateMagicBytes(&buf); err != nil {
		t.Fatalf("ValidateMagicBytes: %v", err)
	}
}

func TestMagicBytesRejected(t *testing.T) {
	err := ValidateMagicBytes(strings.NewReader("HTTP/1.1"))
	if !errors.Is(err, ErrInvalidMagicBytes) {
		t.Fatalf("err = %v, want ErrInvalidMagicBytes", err)
	}
	err = ValidateMagicBytes(strings.NewReader("WC"))
	if err == nil || errors.Is(err, ErrInvalidMagicBytes) {
		t.Fatalf("short read err = %v, want read failure", err)
	}
}

func TestReadLine(t *testing.T) {
	r := bufio.NewReaderSize(strings.NewReader("first\n\nsecond\n"), 16)
	for _, want := range []string{"first", "", "second"} {
		got, err := readLine(r, 64)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != want {
			t.Errorf("readLine = %q, want %q", got, want)
		}
	}
	if _, err := readLine(r, 64); err != io.EOF {
		t.Errorf("err at end = %v, want io.EOF", err)
	}
}

func TestReadLineTooLarge(t *testing.T) {
	long := strings.Repeat("x", 100) + "\n"
	r := bufio.NewReaderSize(strings.NewReader(long), 16)
	if _, err := readLine(r, 64); !errors.Is(err, ErrMessageTooLarge) {
		t.Fatalf("err = %v, want ErrMessageTooLarge", err)
	}
}

func TestServerTLSConfigALPN(t *testing.T) {
	cfg, err := SelfSignedTLSConfig()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.NextProtos) != 1 || cfg.NextProtos[0] != ALPNProtocolMCP {
		t.Errorf("NextProtos = %v", cfg.NextProtos)
	}
	cfg, err = SelfSignedTLSConfig("h3", ALPNProtocolMCP)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.NextProtos) != 2 || cfg.NextProtos[0] != "h3" {
		t.Errorf("NextProtos = %v", cfg.NextProtos)
	}
}

func TestClientNotConnected(t *testing.T) {
	c := NewClient("127.0.0.1:1", nil)
	if _, err := c.ListTools(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("ListTools err = %v", err)
	}
	if _, err := c.CallToolText(context.Background(), "compute", nil); !errors.Is(err, ErrNotConnected) {
		t.Errorf("CallToolText err = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close on unconnected client: %v", err)
	}
}

func newTestMCPServer() *server.MCPServer {
	srv := server.NewMCPServer("wordcalc-test", "0.0.0", server.WithToolCapabilities(false))
	srv.AddTool(mcp.NewTool("double", mcp.WithString("n", mcp.Required())),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			n, err := kit.StringArg(req.GetArguments(), "n")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(n + n + " via " + kit.GetTransport(ctx)), nil
		})
	return srv
}

func TestListenerEndToEnd(t *testing.T) {
	tlsCfg, err := SelfSignedTLSConfig()
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ln, err := NewListener("127.0.0.1:0", tlsCfg, newTestMCPServer(), logger)
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go ln.Serve(ctx)

	c := NewClient(ln.Addr().String(), nil)
	if err := c.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer c.Close()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	tools, err := c.ListTools(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tools.Tools) != 1 || tools.Tools[0].Name != "double" {
		t.Fatalf("tools = %+v", tools.Tools)
	}

	text, err := c.CallToolText(ctx, "double", map[string]any{"n": "21"})
	if err != nil {
		t.Fatal(err)
	}
	if text != "2121 via mcp_quic" {
		t.Errorf("text = %q", text)
	}

	_, err = c.CallToolText(ctx, "double", map[string]any{})
	if !errors.Is(err, ErrToolFailed) {
		t.Errorf("missing argument err = %v, want ErrToolFailed", err)
	}
}
