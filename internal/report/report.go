// Package report renders balances and settlement plans for display.
//
// This is the only place amounts are rounded; the calculator keeps full
// float precision.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
)

// FormatAmount rounds v to places decimals, halves toward positive infinity
// like JavaScript's Math.round. Non-finite values render as "+Inf", "-Inf"
// or "NaN".
//
//	FormatAmount(99.5, 0)    // "100"
//	FormatAmount(-2.5, 0)    // "-2"
//	FormatAmount(-12.345, 2) // "-12.34"
func FormatAmount(v float64, places int32) string {
	if !isFinite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return roundHalfUp(v, places).StringFixed(places)
}

// FormatSigned is FormatAmount with an explicit "+" for positive values.
// Values that round to zero print without a sign.
func FormatSigned(v float64, places int32) string {
	if !isFinite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	d := roundHalfUp(v, places)
	if d.IsPositive() {
		return "+" + d.StringFixed(places)
	}
	return d.StringFixed(places)
}

var half = decimal.NewFromFloat(0.5)

// roundHalfUp computes floor(v*10^places + 0.5) / 10^places. A result of zero
// is normalized so "-0" never shows.
func roundHalfUp(v float64, places int32) decimal.Decimal {
	d := decimal.NewFromFloat(v).Shift(places).Add(half).Floor().Shift(-places)
	if d.IsZero() {
		return decimal.Zero
	}
	return d
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Statement renders a shareable text summary:
//
//	Tokyo balances:
//
//	Alice: +200
//	Bob: -100
//
//	Transfers:
//	Bob -> Alice: 100
func Statement(trip *models.Trip, balances []calculator.Balance, settlements []calculator.Settlement, places int32) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s balances:\n\n", trip.Name)
	for _, bal := range balances {
		name, ok := trip.ParticipantName(bal.ParticipantID)
		if !ok {
			name = calculator.UnknownParticipant
		}
		fmt.Fprintf(&b, "%s: %s\n", name, FormatSigned(bal.Net, places))
	}

	b.WriteString("\n")
	if len(settlements) == 0 {
		b.WriteString("All settled.\n")
		return b.String()
	}

	b.WriteString("Transfers:\n")
	for _, s := range settlements {
		fmt.Fprintf(&b, "%s -> %s: %s\n", s.From, s.To, FormatAmount(s.Amount, places))
	}
	return b.String()
}
