package configs

import "fmt"

// HTTP defines configuration for the inbound HTTP server.
type HTTP struct {
	// Host is the interface to bind to; empty means all interfaces.
	Host string `env:"HOST" envDefault:""`
	// Port is the TCP port the server listens on.
	Port uint16 `env:"PORT" envDefault:"8080"`
}

// Addr renders the host:port listen address.
func (c HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
