// Package quoting provides shared identifier and literal quoting utilities.
package quoting

// DoubleQuote wraps a SQL identifier in double quotes.
//
// Embedded double quotes are not escaped: identifiers are expected to be
// plain names chosen by the application.
func DoubleQuote(s string) string {
	return `"` + s + `"`
}

// SingleQuote wraps a string literal in single quotes.
//
// SECURITY: embedded single quotes are not doubled and nothing is escaped.
// The output is formatted text, not a sanitised value; never pass
// user-controlled input.
func SingleQuote(s string) string {
	return "'" + s + "'"
}
