package sheet

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/ramonehamilton/deckproof/internal/deck"
	"github.com/ramonehamilton/deckproof/internal/scryfall"
)

// Compositor renders a deck as printable proof-sheet pages. Placement is
// strictly sequential since the canvas is mutated in order; only the face
// images of a single card are fetched concurrently.
type Compositor struct {
	client  *scryfall.Client
	logger  *slog.Logger
	baseDir string
}

// Options configures one render.
type Options struct {
	// IncludeBasics places basic lands on the sheet. When false they still
	// contribute to the price total but are skipped for placement.
	IncludeBasics bool

	// Page dimensions in pixels and the gap between cards.
	PageWidth  int
	PageHeight int
	Gap        int

	// DeckName names the output directory and the page files.
	DeckName string
}

// Result reports where the pages went and what the deck costs.
type Result struct {
	OutputDir string
	Pages     int
	TotalUSD  float64
}

// NewCompositor creates a compositor writing pages under baseDir.
func NewCompositor(client *scryfall.Client, baseDir string, logger *slog.Logger) *Compositor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compositor{
		client:  client,
		logger:  logger,
		baseDir: baseDir,
	}
}

// Render lays the deck's card images onto fixed-size pages, paginating when
// a page fills, and accumulates the running USD total. Any fetch, decode or
// write error aborts the whole render; there is no partial-page recovery.
func (c *Compositor) Render(ctx context.Context, d *deck.Deck, opts Options) (*Result, error) {
	layout, err := NewLayout(opts.PageWidth, opts.PageHeight, opts.Gap)
	if err != nil {
		return nil, err
	}

	outputDir := filepath.Join(c.baseDir, opts.DeckName)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	canvas := newPage(opts.PageWidth, opts.PageHeight)
	cardCount := 0
	pageCount := 1
	pagesWritten := 0
	totalUSD := 0.0

	for _, entry := range d.Entries() {
		card, err := c.client.GetCardByName(ctx, entry.Name)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", entry.Name, err)
		}

		price := cardPrice(card)
		totalUSD += price * float64(entry.Quantity)
		c.logger.Info("card fetched",
			"name", entry.Name,
			"price", price,
			"quantity", entry.Quantity)

		if !opts.IncludeBasics && strings.Contains(card.TypeLine, "Basic Land") {
			continue
		}

		urls := card.FaceImageURLs()
		if len(urls) == 0 {
			c.logger.Warn("card has no image, skipping placement", "name", entry.Name)
			continue
		}

		faces, err := c.fetchFaces(ctx, urls)
		if err != nil {
			return nil, fmt.Errorf("fetch images for %s: %w", entry.Name, err)
		}

		// Each face is placed quantity times; a double-faced card therefore
		// occupies twice the slots of a single-faced one.
		for _, img := range faces {
			for i := 0; i < entry.Quantity; i++ {
				placeCard(canvas, img, layout.Position(cardCount))
				cardCount++

				if cardCount == layout.Capacity() {
					if err := c.flushPage(canvas, outputDir, opts.DeckName, pageCount); err != nil {
						return nil, err
					}
					pagesWritten++
					pageCount++
					cardCount = 0
					canvas = newPage(opts.PageWidth, opts.PageHeight)
				}
			}
		}
	}

	// A trailing page holding a single image is dropped, matching the
	// original output exactly.
	if cardCount > 1 {
		if err := c.flushPage(canvas, outputDir, opts.DeckName, pageCount); err != nil {
			return nil, err
		}
		pagesWritten++
	}

	return &Result{
		OutputDir: outputDir,
		Pages:     pagesWritten,
		TotalUSD:  math.Round(totalUSD*100) / 100,
	}, nil
}

// fetchFaces downloads all face images of one card concurrently. Any
// failure fails the whole fetch.
func (c *Compositor) fetchFaces(ctx context.Context, urls []string) ([]image.Image, error) {
	images := make([]image.Image, len(urls))
	errs := make([]error, len(urls))

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			images[i], errs[i] = c.client.GetImage(ctx, url)
		}(i, url)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return images, nil
}

// flushPage writes the canvas as {deckName}_{page}.png in outputDir.
func (c *Compositor) flushPage(canvas *image.RGBA, outputDir, deckName string, page int) error {
	name := fmt.Sprintf("%s_%d.png", deckName, page)
	path := filepath.Join(outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create page file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, canvas); err != nil {
		return fmt.Errorf("encode page %s: %w", name, err)
	}

	c.logger.Info("saved page", "file", name)
	return nil
}

// cardPrice returns the card's USD price, or 0 when absent or unparsable.
func cardPrice(card *scryfall.Card) float64 {
	if card.Prices.USD == nil {
		return 0
	}
	price, err := strconv.ParseFloat(*card.Prices.USD, 64)
	if err != nil {
		return 0
	}
	return price
}

// newPage returns a white canvas of the given dimensions.
func newPage(width, height int) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	return canvas
}

// placeCard scales img into the card slot at pos.
func placeCard(canvas *image.RGBA, img image.Image, pos image.Point) {
	slot := image.Rectangle{Min: pos, Max: pos.Add(image.Point{X: CardWidth, Y: CardHeight})}
	xdraw.ApproxBiLinear.Scale(canvas, slot, img, img.Bounds(), xdraw.Src, nil)
}
