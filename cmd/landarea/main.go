package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/woozymasta/landarea/internal/config"
	"github.com/woozymasta/landarea/internal/display"
	"github.com/woozymasta/landarea/internal/document"
	"github.com/woozymasta/landarea/internal/geo"
	"github.com/woozymasta/landarea/internal/logger"
	"github.com/woozymasta/landarea/internal/session"
	"github.com/woozymasta/landarea/internal/store"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string   `short:"c" long:"config"    env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Input      string   `short:"i" long:"in"        description:"Document to import (file, http(s) URL or - for stdin)"`
	InFormat   string   `long:"in-format"           description:"Input format, guessed from the extension if empty" choice:"json" choice:"yaml" choice:"geojson"`
	Points     []string `short:"p" long:"point"     description:"Append a point as lat,lng (repeatable)"`
	Output     string   `short:"o" long:"out"       description:"Write the document to this path (- for stdout)"`
	Format     string   `short:"f" long:"format"    description:"Output format, defaults to the configured export format" choice:"json" choice:"yaml" choice:"geojson"`
	Export     bool     `short:"e" long:"export"    description:"Write the document to the configured export location"`
	Share      bool     `short:"s" long:"share"     description:"Share the exported file with the configured command"`
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

	opts.Logger.Setup()

	cfgOpt := parser.FindOptionByLongName("config")
	explicit := cfgOpt != nil && cfgOpt.IsSet() && !cfgOpt.IsSetDefault()
	cfg, err := config.Load(opts.ConfigFile, !explicit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	sess := session.New(nil)
	ctx := context.Background()

	if opts.Input != "" {
		data, format, err := readInput(ctx, opts.Input)
		if err != nil {
			log.Fatal().Err(err).Str("source", opts.Input).Msg("Failed to read document")
		}
		if opts.InFormat != "" {
			format = document.Format(opts.InFormat)
		}
		if err := sess.Import(data, format); err != nil {
			log.Fatal().Err(err).Str("source", opts.Input).Msg("Failed to import document")
		}
	}

	for _, raw := range opts.Points {
		p, err := parsePoint(raw)
		if err != nil {
			log.Fatal().Err(err).Str("point", raw).Msg("Invalid point")
		}
		sess.Add(p)
	}

	log.Debug().
		Int("points", sess.Len()).
		Float64("area_m2", sess.Area()).
		Msg("Area computed")

	// keep stdout clean when the document goes there
	panel := os.Stdout
	if opts.Output == "-" {
		panel = os.Stderr
	}
	fmt.Fprint(panel, display.Block(sess.Units()))

	if opts.Output == "" && !opts.Export {
		return
	}

	doc, err := sess.Snapshot()
	if err != nil {
		log.Fatal().Err(err).Msg("Nothing to export")
	}

	format := cfg.Export.Format
	if opts.Format != "" {
		format = document.Format(opts.Format)
	}

	if opts.Output != "" {
		if err := writeOutput(opts.Output, doc, format); err != nil {
			log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write document")
		}
	}

	if opts.Export {
		exporter := cfg.Exporter()
		exporter.SetFormat(format)
		if !opts.Share {
			exporter.Sharer = store.NopSharer{}
		} else if !exporter.Sharer.Available() {
			log.Warn().Strs("command", cfg.Share.Command).Msg("Share command unavailable, export will not be shared")
		}

		if _, err := exporter.Export(ctx, doc); err != nil {
			log.Fatal().Err(err).Msg("Failed to export")
		}
		exporter.Wait()
	}
}

func readInput(ctx context.Context, src string) ([]byte, document.Format, error) {
	if src == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, document.FormatJSON, err
	}

	client := &http.Client{Timeout: 15 * time.Second}
	return store.Load(ctx, client, src)
}

func writeOutput(path string, doc document.Document, format document.Format) error {
	data, err := document.Encode(doc, format)
	if err != nil {
		return err
	}

	if path == "-" {
		_, err = fmt.Println(string(data))
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	log.Info().
		Str("path", path).
		Str("format", string(format)).
		Int("points", len(doc.Points)).
		Msg("Document written")

	return nil
}

// parsePoint reads "lat,lng" in decimal degrees.
func parsePoint(s string) (geo.Point, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return geo.Point{}, fmt.Errorf("expected lat,lng, got %q", s)
	}

	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("latitude: %w", err)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("longitude: %w", err)
	}

	p := geo.Point{Latitude: la, Longitude: lo}
	return p, p.Validate()
}
