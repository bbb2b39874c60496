package check

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ramonehamilton/deckproof/internal/deck"
	"github.com/ramonehamilton/deckproof/internal/scryfall"
)

// defaultFetchTimeout bounds each per-card catalog request.
const defaultFetchTimeout = 10 * time.Second

// state tracks checker progress. Transitions only move forward:
// created -> sizeChecked -> cardsChecked -> reported.
type state int

const (
	stateCreated state = iota
	stateSizeChecked
	stateCardsChecked
	stateReported
)

// Checker validates one deck against one format. A Checker is single-use:
// Run may be called once, after which the instance is spent.
type Checker struct {
	deck    *deck.Deck
	format  string
	client  *scryfall.Client
	logger  *slog.Logger
	timeout time.Duration

	state   state
	reasons []string
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the checker's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) { c.logger = logger }
}

// WithFetchTimeout overrides the per-card request timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Checker) { c.timeout = d }
}

// New creates a checker for one run over the given deck.
func New(d *deck.Deck, format string, client *scryfall.Client, opts ...Option) *Checker {
	c := &Checker{
		deck:    d,
		format:  format,
		client:  client,
		logger:  slog.Default(),
		timeout: defaultFetchTimeout,
		state:   stateCreated,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes the size check and the per-card checks, then builds the
// report: "Legal in {format}" when no violations were found, otherwise the
// violation messages joined one per line in the order they were appended.
func (c *Checker) Run(ctx context.Context) (string, error) {
	if c.state != stateCreated {
		return "", fmt.Errorf("checker already ran; create a new one per deck")
	}

	c.checkDeckSize()
	c.checkAllCards(ctx)

	c.state = stateReported
	if len(c.reasons) == 0 {
		return fmt.Sprintf("Legal in %s", c.format), nil
	}
	return strings.Join(c.reasons, "\n"), nil
}

// checkDeckSize appends size violations. Pure computation, no network.
func (c *Checker) checkDeckSize() {
	c.reasons = append(c.reasons, SizeViolations(c.deck, c.format)...)
	c.state = stateSizeChecked
}

// checkAllCards fetches and evaluates every entry concurrently. Each task
// returns its findings into an indexed slot; the coordinator joins on all
// tasks and merges in deck order, so one slow or failing card never blocks
// or reorders the others. Concurrency is bounded by the client's pacer.
func (c *Checker) checkAllCards(ctx context.Context) {
	entries := c.deck.Entries()
	results := make([][]string, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry deck.CardEntry) {
			defer wg.Done()
			results[i] = c.checkCard(ctx, entry)
		}(i, entry)
	}
	wg.Wait()

	for _, found := range results {
		c.reasons = append(c.reasons, found...)
	}
	c.state = stateCardsChecked
}

// checkCard fetches one card and evaluates it. A fetch failure is recorded
// as a synthetic violation and the card is treated as unverifiable: no rule
// evaluation happens for it.
func (c *Checker) checkCard(ctx context.Context, entry deck.CardEntry) []string {
	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	card, err := c.client.GetCardByName(fetchCtx, entry.Name)
	if err != nil {
		c.logger.Debug("card fetch failed", "name", entry.Name, "error", err)
		return []string{fmt.Sprintf("Error checking %s: %v", entry.Name, err)}
	}

	return CardViolations(entry, card, c.format)
}
