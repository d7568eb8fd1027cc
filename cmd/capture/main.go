// Command capture parses a single job posting URL and prints the record as
// JSON. LinkedIn job pages use the built-in scraper; any other page goes to
// the LLM provider selected in the settings file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"jobclip/internal/config"
	"jobclip/internal/domain"
	"jobclip/internal/page"
	"jobclip/internal/page/httphost"
	"jobclip/internal/page/playwrighthost"
	"jobclip/internal/parser"
	"jobclip/internal/parser/linkedin"
	"jobclip/internal/parser/llm"
	"jobclip/internal/port"
	"jobclip/internal/settings"
)

// singleTab serves one fixed tab as the active tab.
type singleTab struct {
	tab domain.Tab
}

func (s singleTab) ActiveTab(context.Context) (*domain.Tab, error) {
	t := s.tab
	return &t, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	hostKind := flag.String("host", config.HostHTTP, "page host: http or playwright")
	settingsPath := flag.String("settings", cfg.Settings.Path, "user settings file")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: capture [-host http|playwright] [-settings path] <url>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		return fmt.Errorf("expected exactly one url")
	}
	url := flag.Arg(0)

	var host page.ScriptHost
	switch *hostKind {
	case config.HostHTTP:
		host = httphost.New(httphost.Config{
			UserAgent: cfg.Browser.UserAgent,
			Timeout:   cfg.Browser.FetchTimeout,
		})
	case config.HostPlaywright:
		pw := playwrighthost.New(playwrighthost.Config{
			Headless:  cfg.Browser.Headless,
			Timeout:   cfg.Browser.FetchTimeout,
			UserAgent: cfg.Browser.UserAgent,
		})
		defer func() { _ = pw.Close() }()
		host = pw
	default:
		return fmt.Errorf("unsupported host %q", *hostKind)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	llmHTTP := &http.Client{Timeout: time.Duration(cfg.LLM.TimeoutSecs) * time.Second}
	dispatcher := parser.NewDispatcher(
		singleTab{tab: domain.Tab{ID: 1, URL: url, Active: true}},
		settings.NewFileStore(*settingsPath),
		func(provider domain.Provider, opts domain.LLMOptions) port.PostingParser {
			return llm.NewParser(host, llmHTTP, provider, opts)
		},
		parser.SiteRoute{Name: "linkedin", Match: linkedin.Matches, Parser: linkedin.NewParser(host, time.Now)},
	)

	log.Printf("capture: parsing %s with %s host", url, *hostKind)
	rec, err := dispatcher.Parse(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
