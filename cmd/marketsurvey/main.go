package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/marketsurvey/marketsurvey/pkg/config"
	"github.com/marketsurvey/marketsurvey/pkg/db"
	"github.com/marketsurvey/marketsurvey/pkg/llm"
	"github.com/marketsurvey/marketsurvey/pkg/matcher"
	"github.com/marketsurvey/marketsurvey/pkg/scheduler"
	"github.com/marketsurvey/marketsurvey/pkg/scraper"
	"github.com/marketsurvey/marketsurvey/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	EnvFile string `long:"env-file" env:"ENV_FILE" default:".env" description:"env file loaded before the config"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides server host:port from config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run loads configuration, wires the components and serves until ctx is done
func run(ctx context.Context, opts Opts) error {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.Listen != "" {
		host, port, err := net.SplitHostPort(opts.Listen)
		if err != nil {
			return fmt.Errorf("invalid listen address %q: %w", opts.Listen, err)
		}
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid listen port %q: %w", port, err)
		}
		cfg.Server.Host = host
		cfg.Server.Port = portNum
	}

	debug := opts.Debug || cfg.Debug()
	setupLog(debug, cfg.LLM.APIKey)

	log.Printf("[INFO] starting marketsurvey version %s", revision)

	database, err := db.New(db.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	fetcher := scraper.NewFetcher(cfg.Scrape)
	madlan := scraper.NewMadlan(fetcher, cfg.Scrape)
	tax := scraper.NewTaxAuthority(fetcher, cfg.Scrape)
	cities := scraper.NewCityDiscovery(fetcher, cfg.Scrape.MadlanBaseURL)

	sched := scheduler.NewScheduler(scheduler.Params{
		Database:           database,
		ProjectScraper:     madlan,
		TransactionScraper: tax,
		Matcher:            matcher.New(cfg.Matching),
		Correlator:         matcher.NewCorrelator(cfg.Matching),
		UpdateInterval:     cfg.Schedule.UpdateInterval,
		MaxWorkers:         cfg.Schedule.MaxWorkers,
	})
	sched.Start(ctx)
	defer sched.Stop()

	insights := llm.NewInsightsGenerator(cfg.LLM)
	if !insights.Enabled() {
		log.Print("[WARN] no LLM api key set, insights endpoint will report an error")
	}

	srv := server.New(cfg, database, sched, insights, cities, revision, debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		var secrets []string
		for _, s := range secs {
			if s != "" {
				secrets = append(secrets, s)
			}
		}
		if len(secrets) > 0 {
			logOpts = append(logOpts, lgr.Secret(secrets...))
		}
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
