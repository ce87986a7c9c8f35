package mcpquic

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// ValidateMagicBytes reads the protocol preamble from r.
// It guards against a peer that negotiated the ALPN but speaks something else.
func ValidateMagicBytes(r io.Reader) error {
	magic := make([]byte, len(MagicBytesMCP))
	if _, err := io.ReadFull(r, magic); err != nil {
		return fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if !bytes.Equal(magic, []byte(MagicBytesMCP)) {
		return fmt.Errorf("%w: got %q", ErrInvalidMagicBytes, string(magic))
	}
	return nil
}

// SendMagicBytes writes the protocol preamble to w.
// Clients MUST send it immediately after opening the QUIC stream.
func SendMagicBytes(w io.Writer) error {
	if _, err := w.Write([]byte(MagicBytesMCP)); err != nil {
		return fmt.Errorf("failed to write magic bytes: %w", err)
	}
	return nil
}

// readLine reads one newline-terminated message, without the newline.
// Lines longer than max fail with ErrMessageTooLarge.
func readLine(r *bufio.Reader, max int) ([]byte, error) {
	var line []byte
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return nil, err
		}
		if len(line)+len(chunk) > max {
			return nil, ErrMessageTooLarge
		}
		line = append(line, chunk...)
		if !isPrefix {
			return line, nil
		}
	}
}
