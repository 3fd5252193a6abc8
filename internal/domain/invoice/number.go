package invoice

import (
	"fmt"
	"regexp"
	"strconv"
)

// Invoice numbers follow INV-YYYY-NNNN with the sequence scoped to the
// issue year and restarting from 0001 each January.
var numberPattern = regexp.MustCompile(`^INV-(\d{4})-(\d{4,})$`)

// FormatNumber builds an invoice number for the given year and sequence
func FormatNumber(year, sequence int) string {
	return fmt.Sprintf("INV-%d-%04d", year, sequence)
}

// NextNumber derives the next invoice number for a year from the highest
// existing number in that year. An empty lastNumber starts the sequence.
func NextNumber(year int, lastNumber string) string {
	seq := 0
	if m := numberPattern.FindStringSubmatch(lastNumber); m != nil {
		lastYear, _ := strconv.Atoi(m[1])
		if lastYear == year {
			seq, _ = strconv.Atoi(m[2])
		}
	}
	return FormatNumber(year, seq+1)
}

// ParseNumber extracts the year and sequence from an invoice number
func ParseNumber(number string) (year, sequence int, ok bool) {
	m := numberPattern.FindStringSubmatch(number)
	if m == nil {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(m[1])
	sequence, _ = strconv.Atoi(m[2])
	return year, sequence, true
}
