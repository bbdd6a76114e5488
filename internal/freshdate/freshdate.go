// Package freshdate normalizes the date inputs accepted by the products API
// into canonical YYYY-MM-DD form.
package freshdate

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrNotParseable = errors.New("date is not in a recognized format")

// Canonical is the storage form of every normalized date.
const Canonical = "2006-01-02"

// layouts, in priority order. The first layout that both parses the input
// and renders it back byte-for-byte wins, so "32.01.2025" or an unpadded
// "5.1.2025" never slip through a lenient parse.
var layouts = []string{
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"02.01.06",
	"02/01/06",
}

// Normalize parses input into canonical YYYY-MM-DD form. A purely numeric
// input (sign allowed) is a day offset from now: "30" means thirty days out,
// "-5" five days ago, "0" today. Anything else must match one of the
// supported calendar layouts exactly.
func Normalize(input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrNotParseable
	}

	if offset, err := strconv.Atoi(input); err == nil {
		return now.AddDate(0, 0, offset).Format(Canonical), nil
	}

	for _, layout := range layouts {
		parsed, err := time.Parse(layout, input)
		if err != nil {
			continue
		}
		if parsed.Format(layout) != input {
			continue
		}
		return parsed.Format(Canonical), nil
	}

	return "", ErrNotParseable
}
