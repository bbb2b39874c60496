package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/ramonehamilton/deckproof/internal/deck"
)

// WriteDeck prints a deck list to w in two sections, main deck first.
func WriteDeck(w io.Writer, d *deck.Deck) {
	writePool(w, "MAIN DECK", d.Maindeck, d.MainCount())
	if len(d.Sidedeck) > 0 {
		fmt.Fprintln(w)
		writePool(w, "SIDE DECK", d.Sidedeck, d.SideCount())
	}
}

func writePool(w io.Writer, title string, entries []deck.CardEntry, total int) {
	width := len("Card")
	for _, e := range entries {
		if len(e.Name) > width {
			width = len(e.Name)
		}
	}

	fmt.Fprintf(w, "%s (%d cards)\n", title, total)
	fmt.Fprintln(w, strings.Repeat("=", width+6))
	for _, e := range entries {
		fmt.Fprintf(w, "%-*s  %4d\n", width, e.Name, e.Quantity)
	}
}
