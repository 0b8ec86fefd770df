package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseAmount converts a human-readable decimal amount (e.g. "10.0") into
// base units of a token with the given number of decimals. Amounts with more
// fractional digits than the token supports are rejected rather than rounded.
func ParseAmount(amount string, decimals int) (*big.Int, error) {
	if decimals < 0 {
		return nil, fmt.Errorf("%w: negative decimals", ErrInvalidAmount)
	}

	amount = strings.TrimSpace(amount)
	if amount == "" || strings.HasPrefix(amount, "-") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	whole, frac := amount, ""
	if i := strings.IndexByte(amount, '.'); i >= 0 {
		whole, frac = amount[:i], amount[i+1:]
	}
	if whole == "" {
		whole = "0"
	}

	frac = strings.TrimRight(frac, "0")
	if len(frac) > decimals {
		return nil, fmt.Errorf("%w: %q exceeds %d decimals", ErrInvalidAmount, amount, decimals)
	}

	digits := whole + frac + strings.Repeat("0", decimals-len(frac))
	base, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	return base, nil
}

// FormatAmount converts a base-unit amount into its human-readable decimal
// representation, trimming trailing fractional zeros
func FormatAmount(base *big.Int, decimals int) string {
	if base == nil {
		return "0"
	}

	digits := base.String()
	if decimals <= 0 {
		return digits
	}

	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	whole := digits[:len(digits)-decimals]
	frac := strings.TrimRight(digits[len(digits)-decimals:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}
