// Package httpserver constructs the process's single HTTP server.
package httpserver

import (
	"net/http"
	"time"
)

// New returns the server that fronts the compliance and consent API. Header
// and idle timeouts keep slow or abandoned clients from pinning connections
// while evaluations run; per-request deadlines are the router's job.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
