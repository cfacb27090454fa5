package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PriceFormatter renders prices as localized currency strings
// ("₹1,00,000" under en-IN grouping).
type PriceFormatter struct {
	printer *message.Printer
}

// NewPriceFormatter builds a formatter for the given BCP 47 locale,
// falling back to en-IN when the tag does not parse.
func NewPriceFormatter(locale string) *PriceFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse("en-IN")
	}
	return &PriceFormatter{printer: message.NewPrinter(tag)}
}

// Format renders a non-negative price with the rupee sign and locale
// grouping.
func (f *PriceFormatter) Format(price float64) string {
	return f.printer.Sprintf("₹%v", number.Decimal(price))
}
