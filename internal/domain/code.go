package domain

import "regexp"

// Access codes are exactly three digits. Printed on business cards, so the
// format never changes without a coordinated reprint.
var codePattern = regexp.MustCompile(`^\d{3}$`)

// ValidCode reports whether s is a well-formed review access code.
func ValidCode(s string) bool {
	return codePattern.MatchString(s)
}

// Code is an unused review access code.
type Code struct {
	Code      string `json:"code"`
	CreatedAt string `json:"created_at"`
}

// UsedCode is a redeemed access code together with who redeemed it.
type UsedCode struct {
	Code        string `json:"code"`
	CreatedAt   string `json:"created_at"`
	UsedAt      string `json:"used_at"`
	UsedByName  string `json:"used_by_name"`
	UsedByEmail string `json:"used_by_email"`
}

// CodeCounts summarizes the code pool.
type CodeCounts struct {
	Unused int `json:"unused"`
	Used   int `json:"used"`
	Total  int `json:"total"`
}

// CodeSummary is the admin view of the code pool: counts plus bounded
// previews of both partitions.
type CodeSummary struct {
	Counts CodeCounts
	Unused []Code
	Used   []UsedCode
}
