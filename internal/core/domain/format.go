package domain

import (
	"fmt"
	"strings"
)

// Format is a BODACC schema family code.
type Format string

const (
	// FormatRCSA covers registrations, creations and sales (bulletin A).
	FormatRCSA Format = "RCS-A"

	// FormatPCL covers insolvency proceedings (bulletin A).
	FormatPCL Format = "PCL"

	// FormatDIV covers miscellaneous free-text notices (bulletin A).
	FormatDIV Format = "DIV"

	// FormatRCSB covers modifications and strikings-off (bulletin B).
	FormatRCSB Format = "RCS-B"

	// FormatBILAN covers annual account filings (bulletin C).
	FormatBILAN Format = "BILAN"
)

// Formats lists every recognised format in bulletin order.
var Formats = []Format{FormatRCSA, FormatPCL, FormatDIV, FormatRCSB, FormatBILAN}

// ParseFormat validates a format code.
func ParseFormat(code string) (Format, error) {
	for _, f := range Formats {
		if string(f) == code {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, code)
}

// ExpectedParution returns the parution number a document of this format
// must declare when delivered under issueID. DIV issue identifiers are
// 12 characters (date + number) while the document keeps the year and
// the number only.
func (f Format) ExpectedParution(issueID string) string {
	issueID = strings.TrimSpace(issueID)
	if f == FormatDIV && len(issueID) >= 8 {
		return issueID[:4] + issueID[len(issueID)-4:]
	}
	return issueID
}
