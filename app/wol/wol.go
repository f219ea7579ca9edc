// Package wol builds and sends Wake-on-LAN magic packets. Normally the
// packet is broadcast by a proxy agent inside the target's lab; Sender
// exists for the send-from-server mode where the backend shares a segment
// with the machines.
package wol

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"strings"
)

const (
	DefaultBroadcast = "255.255.255.255"
	DefaultPort      = 9
)

// NormalizeMac strips separators and uppercases, leaving bare hex digits.
// It does not validate length; MagicPacket does.
func NormalizeMac(mac string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(mac) {
		if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MagicPacket builds the WoL frame: 6 bytes of 0xFF followed by the 6-byte
// MAC repeated 16 times.
func MagicPacket(mac string) ([]byte, error) {
	normalized := NormalizeMac(mac)
	if len(normalized) != 12 {
		return nil, fmt.Errorf("endereço MAC inválido: %q", mac)
	}
	raw, err := hex.DecodeString(normalized)
	if err != nil {
		return nil, fmt.Errorf("endereço MAC inválido: %q", mac)
	}
	var buf bytes.Buffer
	buf.Write(bytes.Repeat([]byte{0xFF}, 6))
	for i := 0; i < 16; i++ {
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

// Sender broadcasts magic packets over UDP. Zero value uses the standard
// broadcast address and port 9.
type Sender struct {
	Broadcast string
	Port      int
}

func (s Sender) Send(mac string) error {
	pkt, err := MagicPacket(mac)
	if err != nil {
		return err
	}
	broadcast := s.Broadcast
	if broadcast == "" {
		broadcast = DefaultBroadcast
	}
	port := s.Port
	if port == 0 {
		port = DefaultPort
	}
	conn, err := net.Dial("udp", net.JoinHostPort(broadcast, strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("abrir socket UDP: %w", err)
	}
	defer conn.Close()
	if _, err := conn.Write(pkt); err != nil {
		return fmt.Errorf("enviar pacote WoL: %w", err)
	}
	return nil
}
