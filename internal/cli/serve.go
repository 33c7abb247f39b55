package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pharmadesk/internal/api"
	"github.com/mesh-intelligence/pharmadesk/internal/metrics"
	"github.com/mesh-intelligence/pharmadesk/internal/store"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the back-office HTTP API",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			collector := metrics.New()
			s, err := openSession(flags, store.WithObserver(collector))
			if err != nil {
				return err
			}
			defer s.Close()

			if addr == "" {
				addr = s.settings.HTTPAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := s.office.FetchAll(ctx); err != nil {
				log.Printf("initial fetch: %v", err)
			}

			opts := []api.Option{api.WithMetrics(collector.Handler())}
			if len(s.settings.CORSOrigins) > 0 {
				opts = append(opts, api.WithAllowedOrigins(s.settings.CORSOrigins...))
			}
			server := &http.Server{
				Addr:         addr,
				Handler:      api.New(s.office, opts...).Router(),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Printf("pharmadesk listening on %s", addr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Printf("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: http_addr from config)")
	return cmd
}
