package deck

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseFile reads a deck list from disk. The file format is line-oriented:
// each non-blank line is "<quantity> <card name>", and the first blank line
// separates the main deck from the sideboard.
func ParseFile(path string) (*Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck file: %w", err)
	}
	defer func() { _ = f.Close() }()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse deck file %s: %w", path, err)
	}
	return d, nil
}

// Parse reads a deck list from r. Malformed lines are fatal: a deck with a
// bad quantity should never reach the checker.
func Parse(r io.Reader) (*Deck, error) {
	d := &Deck{}
	sideboard := false
	lineNum := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			sideboard = true
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected \"<quantity> <card name>\", got %q", lineNum, line)
		}

		quantity, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid quantity %q", lineNum, fields[0])
		}
		if quantity < 1 {
			return nil, fmt.Errorf("line %d: quantity must be at least 1, got %d", lineNum, quantity)
		}

		entry := CardEntry{
			Name:     strings.Join(fields[1:], " "),
			Quantity: quantity,
		}
		if sideboard {
			d.Sidedeck = append(d.Sidedeck, entry)
		} else {
			d.Maindeck = append(d.Maindeck, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read deck list: %w", err)
	}

	return d, nil
}
