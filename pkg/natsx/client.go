// Package natsx connects to NATS.
package natsx

import (
	"os"

	"github.com/nats-io/nats.go"
)

// DefaultName is the client name reported to the server.
const DefaultName = "arggpt"

// Connect opens a connection to url, falling back to the NATS_URL environment
// variable and then to nats.DefaultURL. Without options the connection is named
// DefaultName and uses compression.
func Connect(url string, opts ...nats.Option) (*nats.Conn, error) {
	if url == "" {
		url = os.Getenv("NATS_URL")
	}
	if url == "" {
		url = nats.DefaultURL
	}
	if len(opts) == 0 {
		opts = append(opts, nats.Name(DefaultName), nats.Compression(true))
	}
	return nats.Connect(url, opts...)
}
