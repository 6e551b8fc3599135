package currency

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// AmountAll is the sentinel returned by ParseAmount for "all"/"max" bets.
// Callers resolve it against the current balance before validating.
const AmountAll int64 = -1

var (
	// ErrInvalidAmount is returned when an amount string cannot be parsed
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrBetBelowMinimum is returned when a bet is under the table minimum
	ErrBetBelowMinimum = errors.New("bet below minimum")

	// ErrBetAboveMaximum is returned when a bet is over the table maximum
	ErrBetAboveMaximum = errors.New("bet above maximum")

	// ErrInsufficientFunds is returned when a bet exceeds the balance
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Shorthand magnitude suffixes, largest first. Values are kept as floats so
// parsing "2.5m" style input is a single multiply.
var multipliers = []struct {
	suffix string
	value  float64
}{
	{"y", 1e24},
	{"z", 1e21},
	{"e", 1e18},
	{"p", 1e15},
	{"t", 1e12},
	{"g", 1e9},
	{"m", 1e6},
	{"k", 1e3},
}

var amountPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([yzeptgmk]?)$`)

// ParseAmount parses an amount string with optional shorthand notation.
// Examples: "1k" = 1000, "5m" = 5000000, "10.5g" = 10500000000. The literals
// "all" and "max" return AmountAll. Returns ErrInvalidAmount for anything else.
func ParseAmount(text string) (int64, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 0, ErrInvalidAmount
	}

	if text == "all" || text == "max" {
		return AmountAll, nil
	}

	match := amountPattern.FindStringSubmatch(text)
	if match == nil {
		// Fall back to a plain numeric parse, which also covers
		// scientific notation like "1e5"
		value, err := strconv.ParseFloat(text, 64)
		if err != nil || value < 0 {
			// Negative input is rejected so it can never collide
			// with the AmountAll sentinel
			return 0, ErrInvalidAmount
		}
		return int64(value), nil
	}

	number, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	if suffix := match[2]; suffix != "" {
		for _, m := range multipliers {
			if m.suffix == suffix {
				return int64(number * m.value), nil
			}
		}
	}

	return int64(number), nil
}

// FormatAmount renders an amount using the largest applicable suffix.
// Non-integral quotients get one decimal place; values below 1000 are
// rendered as plain integers with thousands separators.
func FormatAmount(amount int64) string {
	if amount == 0 {
		return "0"
	}

	if amount < 0 {
		return "-" + FormatAmount(-amount)
	}

	for _, m := range multipliers {
		if float64(amount) >= m.value {
			quotient := float64(amount) / m.value
			if quotient == math.Trunc(quotient) {
				return fmt.Sprintf("%d%s", int64(quotient), m.suffix)
			}
			return fmt.Sprintf("%.1f%s", quotient, m.suffix)
		}
	}

	return groupThousands(amount)
}

// ValidateBet checks a resolved bet against the table limits and the
// player's balance, in that order. A maxBet of 0 means no maximum.
func ValidateBet(amount, balance, minBet, maxBet int64) error {
	if amount < minBet {
		return ErrBetBelowMinimum
	}

	if maxBet > 0 && amount > maxBet {
		return ErrBetAboveMaximum
	}

	if amount > balance {
		return ErrInsufficientFunds
	}

	return nil
}

// groupThousands renders a non-negative integer with comma separators.
func groupThousands(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
