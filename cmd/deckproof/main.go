package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ramonehamilton/deckproof/internal/check"
	"github.com/ramonehamilton/deckproof/internal/config"
	"github.com/ramonehamilton/deckproof/internal/deck"
	"github.com/ramonehamilton/deckproof/internal/display"
	"github.com/ramonehamilton/deckproof/internal/scryfall"
	"github.com/ramonehamilton/deckproof/internal/sheet"
)

var (
	// Deck and format flags
	listPath   = flag.String("list", "", "Path to the deck list file to check (required)")
	deckFormat = flag.String("format", "modern", "Format to check against (e.g. standard, modern, pioneer, commander)")

	// Proof sheet flags
	printSheet = flag.Bool("print", false, "Render a printable proof sheet of the deck")
	withBasics = flag.Bool("basic", false, "Include basic lands on the proof sheet")
	paper      = flag.String("paper", "letter", "Paper size: letter, a4, office, or WxH in cm (e.g. 20x30)")
	outputDir  = flag.String("output", "", "Base directory for rendered pages (overrides config)")

	// Application mode flags
	watchMode      = flag.Bool("watch", false, "Watch the deck list file and re-check on changes")
	debugMode      = flag.Bool("debug-mode", false, "Enable verbose debug logging")
	debugModeShort = flag.Bool("d", false, "Enable debug logging (shorthand for -debug-mode)")
)

func main() {
	flag.Parse()

	if *listPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -list is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	setupLogging(*debugMode || *debugModeShort || cfg.App.DebugMode)

	client, err := buildClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, client); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func buildClient(cfg *config.Config) (*scryfall.Client, error) {
	delay, err := cfg.GetRateLimitDelay()
	if err != nil {
		return nil, err
	}

	var cache *scryfall.Cache
	if cfg.Cache.Enabled {
		cache = scryfall.NewCache(cfg.Cache.MaxSize)
	}

	return scryfall.NewClient(&scryfall.Config{
		BaseURL:        cfg.Catalog.BaseURL,
		UserAgent:      cfg.Catalog.UserAgent,
		RateLimitDelay: delay,
		MaxInFlight:    cfg.Catalog.MaxInFlight,
		Cache:          cache,
	}), nil
}

func run(cfg *config.Config, client *scryfall.Client) error {
	ctx := context.Background()

	if err := checkDeck(ctx, cfg, client); err != nil {
		return err
	}

	if *printSheet {
		if err := renderSheet(ctx, cfg, client); err != nil {
			return err
		}
	}

	if *watchMode {
		return watchDeckFile(ctx, cfg, client)
	}
	return nil
}

// checkDeck parses the deck list, prints it, and runs a legality check.
func checkDeck(ctx context.Context, cfg *config.Config, client *scryfall.Client) error {
	d, err := deck.ParseFile(*listPath)
	if err != nil {
		return err
	}

	display.WriteDeck(os.Stdout, d)
	fmt.Println()

	timeout, err := cfg.GetRequestTimeout()
	if err != nil {
		return err
	}

	checker := check.New(d, *deckFormat, client, check.WithFetchTimeout(timeout))
	report, err := checker.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(report)
	return nil
}

func renderSheet(ctx context.Context, cfg *config.Config, client *scryfall.Client) error {
	d, err := deck.ParseFile(*listPath)
	if err != nil {
		return err
	}

	size, err := parsePaper(*paper)
	if err != nil {
		return err
	}
	pageWidth, pageHeight := size.Pixels()

	baseDir := cfg.Sheet.OutputDir
	if *outputDir != "" {
		baseDir = *outputDir
	}

	comp := sheet.NewCompositor(client, baseDir, slog.Default())
	result, err := comp.Render(ctx, d, sheet.Options{
		IncludeBasics: *withBasics,
		PageWidth:     pageWidth,
		PageHeight:    pageHeight,
		Gap:           cfg.Sheet.Gap,
		DeckName:      deckName(*listPath),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Deck saved to %s (%d pages)\n", result.OutputDir, result.Pages)
	fmt.Printf("Deck price: $%.2f\n", result.TotalUSD)
	return nil
}

// watchDeckFile re-runs the legality check whenever the deck list changes.
func watchDeckFile(ctx context.Context, cfg *config.Config, client *scryfall.Client) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors often replace the file on save, which
	// breaks a watch on the file itself.
	if err := watcher.Add(filepath.Dir(*listPath)); err != nil {
		return fmt.Errorf("watch deck file: %w", err)
	}

	slog.Info("watching deck list", "file", *listPath)

	var debounce *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(*listPath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			// Collapse the event bursts editors produce on save.
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(300*time.Millisecond, func() {
				fmt.Println()
				if err := checkDeck(ctx, cfg, client); err != nil {
					slog.Error("re-check failed", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "error", err)
		}
	}
}

// parsePaper resolves a -paper value: a named size or "WxH" in centimeters.
func parsePaper(value string) (sheet.PaperSize, error) {
	if size, err := sheet.PaperSizeByName(value); err == nil {
		return size, nil
	}

	parts := strings.SplitN(strings.ToLower(value), "x", 2)
	if len(parts) == 2 {
		width, werr := strconv.ParseFloat(parts[0], 64)
		height, herr := strconv.ParseFloat(parts[1], 64)
		if werr == nil && herr == nil {
			return sheet.CustomPaperSize(width, height)
		}
	}
	return sheet.PaperSize{}, fmt.Errorf("invalid paper size %q: use letter, a4, office, or WxH in cm", value)
}

// deckName derives the output name from the deck list file name.
func deckName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
