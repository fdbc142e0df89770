package locale

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Pricing is quoted in USD and converted with fixed rates. The kk price
// carries the regional discount baked into the site's offer.
const (
	usdToRub    = 90.0
	usdToKzt    = 450.0
	kztDiscount = 0.6
)

var printers = map[Locale]*message.Printer{
	RU: message.NewPrinter(language.Russian),
	EN: message.NewPrinter(language.English),
	KK: message.NewPrinter(language.Kazakh),
}

// FormatPrice renders a non-negative USD amount for the given locale.
// Rounding happens before formatting so the output never carries a
// fractional tail. Deterministic: same inputs, same string.
func FormatPrice(usd float64, l Locale) string {
	switch Resolve(string(l)) {
	case EN:
		return "$" + printers[EN].Sprintf("%d", round(usd))
	case KK:
		return printers[KK].Sprintf("%d ₸", round(usd*kztDiscount*usdToKzt))
	default:
		return printers[RU].Sprintf("%d ₽", round(usd*usdToRub))
	}
}

func round(v float64) int64 {
	return int64(math.Round(v))
}
