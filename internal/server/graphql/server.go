package graphql

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bioauth/internal/logging"
	"golang.org/x/sync/errgroup"
)

// HTTPServer serves the GraphQL router and shuts down when its context ends.
type HTTPServer struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

// NewHTTPServer builds the schema, resolvers and router for us.
func NewHTTPServer(a string, l logging.Logger, us userSvc) (*HTTPServer, error) {
	logger := l.With("module", "graphql_server")

	schema, err := NewSchema(NewResolver(us, logger))
	if err != nil {
		return nil, fmt.Errorf("graphql schema: %w", err)
	}

	return &HTTPServer{
		address: a,
		handler: NewRouter(NewHandler(schema, logger), logger),
		logger:  logger,
	}, nil
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *HTTPServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info(ctx, "Starting GraphQL server", "address", lis.Addr().String())
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info(ctx, "Stopping GraphQL server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}
