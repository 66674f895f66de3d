// Package countries holds the static country/currency reference table used by
// the gold rate engine. Rates are computed for exactly this set.
package countries

import "strings"

// Country maps a country to its currency code and symbol.
type Country struct {
	Name         string `json:"country"`
	CurrencyCode string `json:"currencySign"`
	Symbol       string `json:"symbol"`
}

// All is the supported market list, in display order.
var All = []Country{
	{Name: "Pakistan", CurrencyCode: "PKR", Symbol: "Rs"},
	{Name: "India", CurrencyCode: "INR", Symbol: "₹"},
	{Name: "United States", CurrencyCode: "USD", Symbol: "$"},
	{Name: "United Kingdom", CurrencyCode: "GBP", Symbol: "£"},
	{Name: "United Arab Emirates", CurrencyCode: "AED", Symbol: "د.إ"},
	{Name: "Saudi Arabia", CurrencyCode: "SAR", Symbol: "﷼"},
	{Name: "Qatar", CurrencyCode: "QAR", Symbol: "﷼"},
	{Name: "Kuwait", CurrencyCode: "KWD", Symbol: "د.ك"},
	{Name: "Oman", CurrencyCode: "OMR", Symbol: "﷼"},
	{Name: "Bahrain", CurrencyCode: "BHD", Symbol: ".د.ب"},
	{Name: "Bangladesh", CurrencyCode: "BDT", Symbol: "৳"},
	{Name: "Canada", CurrencyCode: "CAD", Symbol: "$"},
	{Name: "Australia", CurrencyCode: "AUD", Symbol: "$"},
	{Name: "European Union", CurrencyCode: "EUR", Symbol: "€"},
	{Name: "Turkey", CurrencyCode: "TRY", Symbol: "₺"},
	{Name: "Malaysia", CurrencyCode: "MYR", Symbol: "RM"},
	{Name: "Singapore", CurrencyCode: "SGD", Symbol: "$"},
	{Name: "China", CurrencyCode: "CNY", Symbol: "¥"},
	{Name: "Japan", CurrencyCode: "JPY", Symbol: "¥"},
	{Name: "Afghanistan", CurrencyCode: "AFN", Symbol: "؋"},
}

// Lookup returns the country for the given currency code (case-insensitive).
func Lookup(currencyCode string) (Country, bool) {
	code := strings.ToUpper(currencyCode)
	for _, c := range All {
		if c.CurrencyCode == code {
			return c, true
		}
	}
	return Country{}, false
}
