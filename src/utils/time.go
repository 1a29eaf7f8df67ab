package utils

import (
	"fmt"
	"strings"
	"time"
)

const ExpirationDateLayout = "2006-01-02"

func ParseExpiration(expiration string) (time.Time, error) {
	t, err := time.Parse(ExpirationDateLayout, strings.TrimSpace(expiration))
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseExpiration: invalid expiration %q: %w", expiration, err)
	}

	return t, nil
}

// DaysToExpiration counts calendar days from the date of now to expiration, floored at 1.
func DaysToExpiration(expiration string, now time.Time) (int, error) {
	exp, err := ParseExpiration(expiration)
	if err != nil {
		return 0, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(exp.Sub(today).Hours() / 24)

	return max(1, days), nil
}
