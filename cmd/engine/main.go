package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/httpapi"
	"jobtrack-engine/internal/query"
	"jobtrack-engine/internal/scheduler"
	"jobtrack-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the desktop shell passes
	// one), else local folder.
	dataDir := os.Getenv("JOBTRACK_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// Single-instance guard: sqlite wants one writer and the store does
	// not arbitrate between processes.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock data dir: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance already owns %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	for _, warn := range res.Warnings {
		log.Printf("level=warn msg=\"config\" warning=%q", warn)
	}
	if !res.OK() {
		log.Fatalf("config invalid (%s): %v", userCfgPath, res.Errors)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "jobtrack.db")
	st, err := store.Open(dbPath, domain.Limits{
		NotesMaxChars:     cfg.Validation.NotesMaxChars,
		RejectFutureDates: cfg.Validation.RejectFutureDates,
	})
	if err != nil {
		// Fatal to the whole app; the shell shows a full-page error when
		// the engine exits this way.
		log.Fatalf("store open failed: %v", err)
	}
	defer st.Close()

	hub := events.NewHub()
	cache := query.NewCache(cfg.Query.CacheSize, time.Duration(cfg.Query.CacheTTLSeconds)*time.Second)

	mux := httpapi.NewMux(httpapi.Deps{
		Store:       st,
		Hub:         hub,
		Cache:       cache,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	limiter := rate.NewLimiter(rate.Limit(cfg.Limits.WriteRPS), cfg.Limits.WriteBurst)
	srv.Handler = httpapi.Chain(mux,
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.WriteLimit(limiter),
		httpapi.AccessLog,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)
	log.Printf("shutdown token: %s", token)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		interval := time.Duration(cfg.Maintenance.CheckpointSeconds) * time.Second
		scheduler.Every(gctx, interval, "db-checkpoint", st.Checkpoint)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
