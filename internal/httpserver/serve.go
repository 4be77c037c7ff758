package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/andrebq/faculty/internal/logutil"
)

// Serve listens on bind and serves handler until ctx is cancelled, then
// shuts down gracefully.
func Serve(ctx context.Context, bind string, handler http.Handler) error {
	lst, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("unable to listen on %v, cause %w", bind, err)
	}
	return ServeListener(ctx, lst, handler)
}

// ServeListener is like Serve but takes an already open listener, which is
// closed when the server stops.
func ServeListener(ctx context.Context, lst net.Listener, handler http.Handler) error {
	server := http.Server{
		Handler:           logutil.RequestLogger(handler),
		Addr:              lst.Addr().String(),
		ReadTimeout:       time.Minute * 5,
		WriteTimeout:      time.Minute,
		ReadHeaderTimeout: time.Minute,
		IdleTimeout:       time.Minute * 5,
		BaseContext: func(net.Listener) context.Context {
			// handlers inherit the logger but not the cancellation,
			// in-flight requests are drained by Shutdown
			return logutil.WithLogger(context.Background(), logutil.GetOrDefault(ctx))
		},
	}
	err := make(chan error, 1)
	done := make(chan struct{})
	go serveInBackground(ctx, &server, lst, err, done)
	<-done
	return <-err
}

func serveInBackground(ctx context.Context, server *http.Server, lst net.Listener, firstErr chan<- error, done chan<- struct{}) {
	log := logutil.GetOrDefault(ctx).With().Str("server.addr", server.Addr).Logger()
	defer close(done)
	serverCtx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		defer cancel()
		log.Info().Msg("Starting HTTP server")
		err := server.Serve(lst)
		if errors.Is(err, http.ErrServerClosed) {
			log.Info().Msg("Server closed")
			// shutdown called,
			// ignore the error
			return
		} else if err != nil {
			select {
			case firstErr <- err:
			default:
			}
			return
		}
	}()
	select {
	case <-serverCtx.Done():
	case <-ctx.Done():
		log.Info().Msg("Initiating shutdown process")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), time.Minute)
		defer cancelShutdown()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown did not complete cleanly")
		}
		log.Info().Msg("Shutdown completed")
	}
	<-stopped
	close(firstErr)
}
