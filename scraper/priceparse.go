package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

// currencySymbol describes one recognised currency token and its numeric
// locale. Sites under scrape print MXN/USD amounts with comma grouping and a
// period decimal; EUR amounts arrive the other way around. The source pattern
// never fully disambiguated a lone separator, so the rule here is explicit:
// a single separator followed by exactly three digits is treated as grouping
// unless the currency is comma-decimal.
type currencySymbol struct {
	token        string
	decimalComma bool
}

var currencyTable = []currencySymbol{
	{token: "MXN"},
	{token: "USD"},
	{token: "EUR", decimalComma: true},
	{token: "$"},
}

var priceTokenRe = regexp.MustCompile(`(MXN|USD|EUR|\$)\s*([0-9][0-9.,]*[0-9]|[0-9])`)

// ParsedPrice is one currency-amount token lifted from page text.
type ParsedPrice struct {
	Raw      string  // the matched token, e.g. "$ 1,250"
	Currency string  // the symbol that matched, e.g. "$"
	Amount   float64 // normalised numeric value
}

// PriceParser finds currency-amount tokens using an explicit symbol table.
type PriceParser struct{}

// FindFirst returns the first price-like token in text.
func (PriceParser) FindFirst(text string) (ParsedPrice, bool) {
	m := priceTokenRe.FindStringSubmatch(text)
	if m == nil {
		return ParsedPrice{}, false
	}
	symbol, digits := m[1], m[2]

	amount, ok := normalizeAmount(digits, decimalCommaFor(symbol))
	if !ok {
		return ParsedPrice{}, false
	}
	return ParsedPrice{
		Raw:      strings.TrimSpace(m[0]),
		Currency: symbol,
		Amount:   amount,
	}, true
}

func decimalCommaFor(symbol string) bool {
	for _, c := range currencyTable {
		if c.token == symbol {
			return c.decimalComma
		}
	}
	return false
}

// normalizeAmount resolves grouping vs. decimal separators. With both
// separators present the last one wins as decimal. With one separator, a
// trailing group of exactly three digits reads as grouping in the currency's
// grouping role, otherwise as decimal.
func normalizeAmount(digits string, decimalComma bool) (float64, bool) {
	group, decimal := ",", "."
	if decimalComma {
		group, decimal = ".", ","
	}

	hasGroup := strings.Contains(digits, group)
	hasDecimal := strings.Contains(digits, decimal)

	switch {
	case hasGroup && hasDecimal:
		if strings.LastIndex(digits, decimal) < strings.LastIndex(digits, group) {
			// Separators in the unexpected order; trust positions instead of
			// roles and treat the final one as decimal.
			group, decimal = decimal, group
		}
		digits = strings.ReplaceAll(digits, group, "")
		digits = strings.Replace(digits, decimal, ".", 1)
	case hasGroup:
		digits = resolveLoneSeparator(digits, group, true)
	case hasDecimal:
		digits = resolveLoneSeparator(digits, decimal, false)
	}

	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// resolveLoneSeparator handles a value with a single separator kind.
// groupingRole says whether that separator is the currency's grouping char.
func resolveLoneSeparator(digits, sep string, groupingRole bool) string {
	parts := strings.Split(digits, sep)
	last := parts[len(parts)-1]

	if len(parts) > 2 {
		// Repeated separator can only be grouping.
		return strings.ReplaceAll(digits, sep, "")
	}
	if groupingRole && len(last) == 3 {
		return strings.ReplaceAll(digits, sep, "")
	}
	return strings.Replace(digits, sep, ".", 1)
}

// cleanRoomLabel strips capacity annotations from a room-type label:
// parenthesised suffixes, "x N" occupancy markers and collapsed whitespace.
var (
	parenRe    = regexp.MustCompile(`\s*\([^)]*\)`)
	occupantRe = regexp.MustCompile(`(?i)\s*[x×]\s*\d+\s*$`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

func cleanRoomLabel(label string) string {
	label = parenRe.ReplaceAllString(label, "")
	label = occupantRe.ReplaceAllString(label, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(label, " "))
}
