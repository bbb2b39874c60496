package check

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ramonehamilton/deckproof/internal/deck"
	"github.com/ramonehamilton/deckproof/internal/scryfall"
)

// fakeCatalog serves canned card metadata keyed by fuzzy name.
func fakeCatalog(t *testing.T, cards map[string]*scryfall.Card) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("fuzzy")
		card, ok := cards[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"object":"error","code":"not_found","status":404,"details":"No card found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(card); err != nil {
			t.Errorf("encode card: %v", err)
		}
	}))
}

func catalogClient(serverURL string) *scryfall.Client {
	return scryfall.NewClient(&scryfall.Config{
		BaseURL:        serverURL,
		RateLimitDelay: time.Millisecond,
	})
}

func legalCard(name, typeLine string) *scryfall.Card {
	return &scryfall.Card{
		Name:       name,
		TypeLine:   typeLine,
		Legalities: map[string]string{"modern": "legal", "commander": "legal"},
	}
}

func TestChecker_LegalDeck(t *testing.T) {
	server := fakeCatalog(t, map[string]*scryfall.Card{
		"Island":         legalCard("Island", "Basic Land — Island"),
		"Lightning Bolt": legalCard("Lightning Bolt", "Instant"),
	})
	defer server.Close()

	d := &deck.Deck{
		Maindeck: []deck.CardEntry{
			{Name: "Island", Quantity: 56},
			{Name: "Lightning Bolt", Quantity: 4},
		},
	}

	checker := New(d, "modern", catalogClient(server.URL))
	report, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report != "Legal in modern" {
		t.Errorf("report = %q, want %q", report, "Legal in modern")
	}
}

func TestChecker_ViolationOrdering(t *testing.T) {
	banned := &scryfall.Card{
		Name:       "Splinter Twin",
		TypeLine:   "Enchantment — Aura",
		Legalities: map[string]string{"modern": "banned"},
	}
	server := fakeCatalog(t, map[string]*scryfall.Card{
		"Splinter Twin":  banned,
		"Lightning Bolt": legalCard("Lightning Bolt", "Instant"),
		"Negate":         legalCard("Negate", "Instant"),
	})
	defer server.Close()

	// Undersized deck with a banned over-quantity card in the main deck and
	// an over-quantity card in the sideboard.
	d := &deck.Deck{
		Maindeck: []deck.CardEntry{
			{Name: "Splinter Twin", Quantity: 5},
			{Name: "Lightning Bolt", Quantity: 4},
		},
		Sidedeck: []deck.CardEntry{
			{Name: "Negate", Quantity: 16},
		},
	}

	checker := New(d, "modern", catalogClient(server.URL))
	report, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := strings.Join([]string{
		"Maindeck has 9/60 cards",
		"Sideboard has 16/15 cards",
		"Splinter Twin is banned in modern",
		"Too many Splinter Twin (max 4)",
		"Too many Negate (max 4)",
	}, "\n")
	if report != want {
		t.Errorf("report =\n%s\nwant:\n%s", report, want)
	}
}

func TestChecker_FetchErrorDoesNotAbortBatch(t *testing.T) {
	server := fakeCatalog(t, map[string]*scryfall.Card{
		"Island": legalCard("Island", "Basic Land — Island"),
	})
	defer server.Close()

	d := &deck.Deck{
		Maindeck: []deck.CardEntry{
			{Name: "Island", Quantity: 56},
			{Name: "Misspelled Nonsense", Quantity: 4},
		},
	}

	checker := New(d, "modern", catalogClient(server.URL))
	report, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(report, "Error checking Misspelled Nonsense:") {
		t.Errorf("Expected synthetic fetch violation, got:\n%s", report)
	}
	// The failing card must not suppress the rest of the report or create
	// violations for the healthy card.
	if strings.Contains(report, "Island") {
		t.Errorf("Healthy card should produce no violations, got:\n%s", report)
	}
}

func TestChecker_CommanderSizes(t *testing.T) {
	server := fakeCatalog(t, map[string]*scryfall.Card{
		"Forest":          legalCard("Forest", "Basic Land — Forest"),
		"Ghalta":          legalCard("Ghalta", "Legendary Creature — Elder Dinosaur"),
		"Relentless Rats": legalCard("Relentless Rats", "Creature — Rat"),
	})
	defer server.Close()

	d := &deck.Deck{
		Maindeck: []deck.CardEntry{
			{Name: "Forest", Quantity: 59},
			{Name: "Relentless Rats", Quantity: 40},
		},
		Sidedeck: []deck.CardEntry{
			{Name: "Ghalta", Quantity: 1},
		},
	}

	checker := New(d, "commander", catalogClient(server.URL))
	report, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report != "Legal in commander" {
		t.Errorf("report = %q, want %q", report, "Legal in commander")
	}
}

func TestChecker_ManyCardsShareDelayBudget(t *testing.T) {
	// Cards beyond the in-flight cap queue for a permit, but the flat
	// per-request delay is paid while holding one, so a whole deck of
	// healthy cards checks well inside each card's own fetch timeout.
	cards := make(map[string]*scryfall.Card, 20)
	entries := make([]deck.CardEntry, 0, 20)
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("Test Card %d", i)
		cards[name] = legalCard(name, "Instant")
		entries = append(entries, deck.CardEntry{Name: name, Quantity: 3})
	}

	server := fakeCatalog(t, cards)
	defer server.Close()

	client := scryfall.NewClient(&scryfall.Config{
		BaseURL:        server.URL,
		RateLimitDelay: 100 * time.Millisecond,
	})

	d := &deck.Deck{Maindeck: entries}
	checker := New(d, "modern", client, WithFetchTimeout(400*time.Millisecond))

	report, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report != "Legal in modern" {
		t.Errorf("report = %q, want %q", report, "Legal in modern")
	}
}

func TestChecker_NotReusable(t *testing.T) {
	server := fakeCatalog(t, map[string]*scryfall.Card{})
	defer server.Close()

	d := &deck.Deck{Maindeck: []deck.CardEntry{{Name: "Island", Quantity: 60}}}
	checker := New(d, "modern", catalogClient(server.URL))

	if _, err := checker.Run(context.Background()); err != nil {
		t.Fatalf("First Run failed: %v", err)
	}
	if _, err := checker.Run(context.Background()); err == nil {
		t.Fatal("Second Run should fail: checkers are single-use")
	}
}

func TestChecker_FetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"name":"Island","type_line":"Basic Land","legalities":{"modern":"legal"}}`))
	}))
	defer server.Close()

	d := &deck.Deck{Maindeck: []deck.CardEntry{{Name: "Island", Quantity: 60}}}
	checker := New(d, "modern", catalogClient(server.URL), WithFetchTimeout(50*time.Millisecond))

	report, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(report, "Error checking Island:") {
		t.Errorf("Expected timeout to surface as synthetic violation, got:\n%s", report)
	}
}
