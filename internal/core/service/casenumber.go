package service

import "fmt"

// FormatCaseNumber renders a human-facing case identifier as
// <PREFIX>-<YEAR>-<SEQ> with the sequence zero-padded to width digits, so
// numbers sort lexically within a year. Prefix and width are configuration,
// not a cross-system contract.
func FormatCaseNumber(prefix string, year int, seq int64, width int) string {
	return fmt.Sprintf("%s-%d-%0*d", prefix, year, width, seq)
}
