package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"jobclip/internal/auth"
	"jobclip/internal/config"
	"jobclip/internal/domain"
	"jobclip/internal/handler"
	"jobclip/internal/page"
	"jobclip/internal/page/httphost"
	"jobclip/internal/page/playwrighthost"
	"jobclip/internal/parser"
	"jobclip/internal/parser/linkedin"
	"jobclip/internal/parser/llm"
	"jobclip/internal/port"
	"jobclip/internal/relay"
	"jobclip/internal/repository/postgres"
	"jobclip/internal/router"
	"jobclip/internal/service"
	"jobclip/internal/settings"
	s3storage "jobclip/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	postingRepo := postgres.NewPostingRepo(db)
	fileRepo := postgres.NewCapturedFileRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Page host and tab tracking
	host, snapshots, closeHost := newPageHost(&cfg.Browser)
	defer func() {
		if err := closeHost(); err != nil {
			log.Printf("page host close: %v", err)
		}
	}()

	var onRemove []func(int)
	var snapshotStore service.SnapshotStore
	if snapshots != nil {
		onRemove = append(onRemove, snapshots.Forget)
		snapshotStore = snapshots
	}
	tracker := relay.NewTabTracker(cfg.Relay.TabCapacity, onRemove...)

	// Parsers
	settingsStore := settings.NewFileStore(cfg.Settings.Path)
	llmHTTP := &http.Client{Timeout: time.Duration(cfg.LLM.TimeoutSecs) * time.Second}
	newLLM := func(provider domain.Provider, opts domain.LLMOptions) port.PostingParser {
		return llm.NewParser(host, llmHTTP, provider, opts)
	}
	dispatcher := parser.NewDispatcher(tracker, settingsStore, newLLM, parser.SiteRoute{
		Name:   "linkedin",
		Match:  linkedin.Matches,
		Parser: linkedin.NewParser(host, time.Now),
	})

	fileRelay := relay.New(s3Client, fileRepo, tracker, relay.Config{
		Bucket:       cfg.S3.Bucket,
		MaxFileBytes: cfg.S3.MaxFileSizeMB << 20,
	})

	// Initialize services
	postingSvc := service.NewPostingService(dispatcher, tracker, postingRepo)
	settingsSvc := service.NewSettingsService(settingsStore)
	tabSvc := service.NewTabService(tracker, snapshotStore)
	fileSvc := service.NewFileService(fileRelay, fileRepo, s3Client, &cfg.S3)
	tokens := auth.NewTokenService(&cfg.JWT)

	health := handler.NewHealthHandler(
		handler.ReadinessCheck{Name: "database", Check: db.PingContext},
		handler.ReadinessCheck{Name: "settings", Check: func(ctx context.Context) error {
			_, err := settingsStore.Load(ctx)
			return err
		}},
	)

	// Setup router
	r := router.Setup(tokens, cfg.CORS.AllowedOrigins, router.Handlers{
		Posting:  handler.NewPostingHandler(postingSvc),
		Tab:      handler.NewTabHandler(tabSvc),
		Settings: handler.NewSettingsHandler(settingsSvc),
		File:     handler.NewFileHandler(fileSvc),
		Health:   health,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server starting on %s (page host: %s, settings: %s)",
			cfg.Server.Port, cfg.Browser.Host, settingsStore.Path())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// newPageHost builds the configured script host. snapshots is non-nil only
// for the snapshot host, which is fed by the extension.
func newPageHost(cfg *config.BrowserConfig) (host page.ScriptHost, snapshots *page.SnapshotHost, closeFn func() error) {
	noop := func() error { return nil }
	switch cfg.Host {
	case config.HostHTTP:
		return httphost.New(httphost.Config{
			UserAgent: cfg.UserAgent,
			ReqPerSec: cfg.ReqPerSec,
			Burst:     cfg.Burst,
			Timeout:   cfg.FetchTimeout,
		}), nil, noop
	case config.HostPlaywright:
		h := playwrighthost.New(playwrighthost.Config{
			Headless:  cfg.Headless,
			Timeout:   cfg.FetchTimeout,
			UserAgent: cfg.UserAgent,
		})
		return h, nil, h.Close
	default:
		s := page.NewSnapshotHost(cfg.SnapshotCapacity)
		return s, s, noop
	}
}
