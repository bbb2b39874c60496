package deck

// CardEntry is a single line of a deck list: a card name and how many
// copies are played.
type CardEntry struct {
	Name     string
	Quantity int
}

// Deck holds the parsed contents of a deck list, split into the main
// deck and the sideboard. Both pools preserve file order.
type Deck struct {
	Maindeck []CardEntry
	Sidedeck []CardEntry
}

// MainCount returns the total number of cards in the main deck.
func (d *Deck) MainCount() int {
	return countCards(d.Maindeck)
}

// SideCount returns the total number of cards in the sideboard.
func (d *Deck) SideCount() int {
	return countCards(d.Sidedeck)
}

// Entries returns all entries in deck order: maindeck first, then sideboard.
func (d *Deck) Entries() []CardEntry {
	entries := make([]CardEntry, 0, len(d.Maindeck)+len(d.Sidedeck))
	entries = append(entries, d.Maindeck...)
	entries = append(entries, d.Sidedeck...)
	return entries
}

func countCards(entries []CardEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Quantity
	}
	return total
}
