package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/efreitasn/miniledger/internal/engine"
	"github.com/efreitasn/miniledger/internal/handler"
	"github.com/efreitasn/miniledger/internal/report"
	"github.com/efreitasn/miniledger/internal/service"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ledger engine behind an HTTP API",
	Long: `Starts an HTTP server that accepts transaction records on POST
/transactions and exposes account snapshots and rejection notices for
querying. The same engine semantics apply as in batch mode.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	port := cfg.Port
	if servePort > 0 {
		port = servePort
	}

	notices := report.NewMemoryReporter()
	reporter := report.MultiReporter{notices, report.NewLogReporter(logger)}
	eng := engine.New(cfg.WindowSize, reporter, logger)
	svc := service.NewLedgerService(eng, notices)
	router := handler.NewRouter(svc, logger)

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
