package domain

import "strings"

// IdentifierClass tells whether a raw identifier is an email or a phone number.
type IdentifierClass int

const (
	IdentifierPhone IdentifierClass = iota
	IdentifierEmail
)

// ClassifyIdentifier is the single classification rule for the whole system:
// a string containing '@' is an email, anything else is a phone number.
// Every component that needs to route on identifier shape calls this.
func ClassifyIdentifier(raw string) IdentifierClass {
	if strings.Contains(raw, "@") {
		return IdentifierEmail
	}
	return IdentifierPhone
}
