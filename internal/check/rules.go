package check

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/deckproof/internal/deck"
	"github.com/ramonehamilton/deckproof/internal/scryfall"
)

// FormatCommander is the format requiring exactly 99 maindeck cards plus a
// single commander in the side pool.
const FormatCommander = "commander"

const defaultMaxCopies = 4

// unlimitedCards may appear in any quantity.
var unlimitedCards = map[string]struct{}{
	"Persistent Petitioners": {},
	"Rat Colony":             {},
	"Relentless Rats":        {},
	"Shadowborn Apostle":     {},
	"Dragon's Approach":      {},
}

// specialLimitCards carry their own printed copy limit.
var specialLimitCards = map[string]int{
	"Seven Dwarves": 7,
}

// SizeViolations validates deck size requirements for the given format.
// It needs no card metadata. Maindeck violations come before sideboard
// violations; both can fire.
func SizeViolations(d *deck.Deck, format string) []string {
	mainCount := d.MainCount()
	sideCount := d.SideCount()

	var violations []string
	if format == FormatCommander {
		if mainCount != 99 {
			violations = append(violations, fmt.Sprintf("Commander deck has %d/99 cards", mainCount))
		}
		if sideCount != 1 {
			violations = append(violations, fmt.Sprintf("Has %d commanders (needs 1)", sideCount))
		}
	} else {
		if mainCount < 60 {
			violations = append(violations, fmt.Sprintf("Maindeck has %d/60 cards", mainCount))
		}
		if sideCount > 15 {
			violations = append(violations, fmt.Sprintf("Sideboard has %d/15 cards", sideCount))
		}
	}
	return violations
}

// CardViolations evaluates one deck entry against its fetched metadata.
// The legality violation, if any, precedes the quantity violation.
func CardViolations(entry deck.CardEntry, card *scryfall.Card, format string) []string {
	var violations []string

	if legality := card.Legalities[format]; legality != "legal" {
		status := "not found"
		if legality != "" {
			status = strings.ReplaceAll(legality, "_", " ")
		}
		violations = append(violations, fmt.Sprintf("%s is %s in %s", entry.Name, status, format))
	}

	if v := quantityViolation(entry, card); v != "" {
		violations = append(violations, v)
	}
	return violations
}

// quantityViolation applies the copy-limit rules in precedence order:
// special printed limits, then the unlimited allowlist, then the basic-land
// exemption, then the default limit of 4.
func quantityViolation(entry deck.CardEntry, card *scryfall.Card) string {
	if limit, ok := specialLimitCards[entry.Name]; ok {
		if entry.Quantity > limit {
			return fmt.Sprintf("Too many %s (max %d)", entry.Name, limit)
		}
		return ""
	}
	if _, ok := unlimitedCards[entry.Name]; ok {
		return ""
	}
	if strings.HasPrefix(card.TypeLine, "Basic") {
		return ""
	}
	if entry.Quantity > defaultMaxCopies {
		return fmt.Sprintf("Too many %s (max %d)", entry.Name, defaultMaxCopies)
	}
	return ""
}
