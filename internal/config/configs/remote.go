package configs

import (
	"net/url"
	"time"
)

// Remote configures the marketing platform API client. Timeout bounds every
// remote call; there is no retry, a failed call is terminal for its command.
type Remote struct {
	// BaseURL is the API host, without the version segment.
	BaseURL url.URL `env:"BASE_URL" envDefault:"https://graph.facebook.com"`
	// Version is the API version segment appended to BaseURL.
	Version string `env:"VERSION" envDefault:"v19.0"`
	// Timeout is the per-call HTTP timeout.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
	// TokenTTL is the default lifetime for cached access tokens when the
	// auth layer does not supply one.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
}
