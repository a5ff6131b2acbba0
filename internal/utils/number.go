package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var docNumberRegex = regexp.MustCompile(`^([A-Z]+)-(\d{8})-(\d{4})$`)

// FormatDocNumber renders a PREFIX-YYYYMMDD-NNNN document number.
func FormatDocNumber(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, day.Format("20060102"), seq)
}

// ParseDocNumber splits a document number into prefix, day and sequence.
func ParseDocNumber(number string) (string, time.Time, int64, error) {
	m := docNumberRegex.FindStringSubmatch(number)
	if m == nil {
		return "", time.Time{}, 0, fmt.Errorf("malformed document number: %s", number)
	}

	day, err := time.Parse("20060102", m[2])
	if err != nil {
		return "", time.Time{}, 0, fmt.Errorf("malformed document number date: %s", number)
	}

	seq, _ := strconv.ParseInt(m[3], 10, 64)
	return m[1], day, seq, nil
}
