package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/larriantoniy/ocrspace/internal/adapters/ocrspace"
	redisrepo "github.com/larriantoniy/ocrspace/internal/adapters/redis"
	"github.com/larriantoniy/ocrspace/internal/config"
	delivery "github.com/larriantoniy/ocrspace/internal/delivery/http"
	"github.com/larriantoniy/ocrspace/internal/domain"
	"github.com/larriantoniy/ocrspace/internal/ports"
	"github.com/larriantoniy/ocrspace/internal/useCases"
)

const (
	envDev  = "dev"
	envProd = "prod"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	logger := setupLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Error("ocrspace failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	client := ocrspace.NewClient(cfg.APIKey,
		ocrspace.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		ocrspace.WithLogger(logger),
	)
	if cfg.Endpoint != "" {
		if err := client.SetEndpoint(cfg.Endpoint); err != nil {
			return err
		}
	}

	var repo ports.ResultRepo
	if cfg.RedisAddr != "" {
		rdb := redisrepo.NewResultRepo(cfg.RedisAddr, "", cfg.RedisDB, logger)
		defer rdb.Close()
		if err := rdb.EnsureIndex(ctx); err != nil {
			return err
		}
		repo = rdb
	}
	svc := useCases.NewRecognitionService(repo, logger)

	failed, err := recognizeAll(ctx, client, cfg, svc, logger, out)
	if err != nil {
		return err
	}

	if cfg.Serve {
		if err := serve(ctx, cfg.ServerAddr, delivery.NewRouter(delivery.NewHandler(svc, logger)), logger); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(cfg.Inputs))
	}
	return nil
}

type job struct {
	source string
	future *ocrspace.Future
}

// recognizeAll sends every input through a bounded errgroup pool and
// records the replies in input order. It returns the number of failed inputs.
func recognizeAll(ctx context.Context, client *ocrspace.Client, cfg *config.Config, svc *useCases.RecognitionService, logger *slog.Logger, out io.Writer) (int, error) {
	builder := client.NewRequestBuilder()
	if err := applyParams(builder, cfg.Params); err != nil {
		return 0, err
	}

	var g errgroup.Group
	g.SetLimit(cfg.Concurrency)

	failed := 0
	jobs := make([]job, 0, len(cfg.Inputs))
	for _, input := range cfg.Inputs {
		r, err := resolveTarget(builder, input, cfg.Reencode)
		if err != nil {
			logger.Error("Skipping input", "source", input, "error", err)
			failed++
			continue
		}
		jobs = append(jobs, job{source: input, future: r.AsyncRequestIn(ctx, &g)})
	}

	for _, j := range jobs {
		rec, err := collect(ctx, svc, j.source, j.future)
		if err != nil {
			logger.Error("Recognition failed", "source", j.source, "error", err)
			failed++
			continue
		}
		fmt.Fprintf(out, "== %s\n%s\n", rec.Source, rec.Text)
	}
	// Tasks never report errors; failures were delivered through the futures.
	_ = g.Wait()
	return failed, nil
}

func collect(ctx context.Context, svc *useCases.RecognitionService, source string, f *ocrspace.Future) (*domain.Recognition, error) {
	resp, err := f.Wait(ctx)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(data))
	}
	return svc.Record(ctx, source, resp.Body)
}

func serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		logger.Info("HTTP server closed")
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		logger = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return logger
}
