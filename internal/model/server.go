package model

import (
	"context"
	"net"
)

// SecurityLayer abstracts listener creation so the server can run
// with or without TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server defines lifecycle operations for a network server.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
