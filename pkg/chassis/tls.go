package chassis

import (
	"crypto/tls"

	"github.com/hazyhaar/wordcalc/pkg/mcpquic"
)

// ALPNHTTP3 is the ALPN token for HTTP/3.
const ALPNHTTP3 = "h3"

// DevelopmentTLSConfig generates a self-signed TLS config with dual ALPN:
// HTTP/3 and MCP over QUIC.
func DevelopmentTLSConfig() (*tls.Config, error) {
	return mcpquic.SelfSignedTLSConfig(ALPNHTTP3, mcpquic.ALPNProtocolMCP)
}

// ProductionTLSConfig loads cert/key from files with dual ALPN.
func ProductionTLSConfig(certFile, keyFile string) (*tls.Config, error) {
	return mcpquic.ServerTLSConfig(certFile, keyFile, ALPNHTTP3, mcpquic.ALPNProtocolMCP)
}
