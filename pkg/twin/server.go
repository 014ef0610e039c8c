/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package twin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
)

// Options configures the standalone server.
type Options struct {
	// ListenAddress is the TCP address to serve on.
	ListenAddress string

	// ReadHeaderTimeout bounds how long a client may take to send headers.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// AddFlags registers the server flags.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.ListenAddress, "listen-address", ":8080", "API listener address.")
	f.DurationVar(&o.ReadHeaderTimeout, "read-header-timeout", 10*time.Second, "How long to wait for request headers.")
	f.DurationVar(&o.ShutdownTimeout, "shutdown-timeout", 10*time.Second, "How long to wait for in flight requests on shutdown.")
}

// Server wraps an HTTP server serving the objects resource.
type Server struct {
	options Options
	store   *Store
	log     logr.Logger
}

// NewServer returns a server over a freshly seeded store.
func NewServer(options Options, log logr.Logger) *Server {
	return &Server{
		options: options,
		store:   NewStore(),
		log:     log,
	}
}

// Store exposes the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.options.ListenAddress)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.options.ListenAddress, err)
	}

	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled, then drains in flight
// requests.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           NewRouter(s.store, s.log),
		ReadHeaderTimeout: s.options.ReadHeaderTimeout,
	}

	errs := make(chan error, 1)

	go func() {
		s.log.Info("server listening", "address", listener.Addr().String())

		errs <- server.Serve(listener)
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.options.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
