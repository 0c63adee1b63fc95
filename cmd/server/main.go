package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/woozymasta/landarea/internal/config"
	"github.com/woozymasta/landarea/internal/geo"
	"github.com/woozymasta/landarea/internal/logger"
	"github.com/woozymasta/landarea/internal/server"
	"github.com/woozymasta/landarea/internal/session"
	"github.com/woozymasta/landarea/internal/store"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"     env:"CONFIG_FILE"    description:"Path to configuration file" default:"config.yaml"`
	Addr       string `short:"a" long:"addr"       env:"LISTEN_ADDRESS" description:"Address to listen on"       default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"       env:"LISTEN_PORT"    description:"Port to listen on"          default:"8080"`
	ExportDir  string `short:"d" long:"export-dir" env:"EXPORT_DIR"     description:"Override the export directory"`
	Load       string `short:"l" long:"load"       env:"LOAD_DOCUMENT"  description:"Document to load as the initial point set"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfgOpt := parser.FindOptionByLongName("config")
	explicit := cfgOpt != nil && cfgOpt.IsSet() && !cfgOpt.IsSetDefault()
	cfg, err := config.Load(opts.ConfigFile, !explicit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if opts.ExportDir != "" {
		cfg.Export.Dir = opts.ExportDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var initial []geo.Point
	if opts.Load != "" {
		initial = loadInitial(ctx, opts.Load)
	}

	exporter := cfg.Exporter()
	srvCtx := server.NewServerContext(exporter, initial)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           server.RequestLogger(srvCtx.Routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}()

	log.Info().
		Str("addr", listenAddr).
		Str("export_dir", cfg.Export.Dir).
		Str("export_format", string(cfg.Export.Format)).
		Msg("Web server started")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}

	exporter.Wait()
	log.Info().Msg("Server stopped")
}

// loadInitial reads the starting document. A broken document is logged and
// the server starts empty.
func loadInitial(ctx context.Context, src string) []geo.Point {
	data, format, err := store.Load(ctx, &http.Client{Timeout: 15 * time.Second}, src)
	if err != nil {
		log.Error().Err(err).Str("source", src).Msg("Failed to read initial document")
		return nil
	}

	sess := session.New(nil)
	if err := sess.Import(data, format); err != nil {
		log.Error().Err(err).Str("source", src).Msg("Failed to import initial document")
		return nil
	}

	return sess.Points()
}
