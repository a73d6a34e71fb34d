package enums

import "strings"

// ContentStatus is the lifecycle of moderated content. PENDING is the sole
// initial state; APPROVED and REJECTED are terminal.
type ContentStatus string

const (
	ContentStatusPending  ContentStatus = "PENDING"
	ContentStatusApproved ContentStatus = "APPROVED"
	ContentStatusRejected ContentStatus = "REJECTED"
)

func ParseContentStatus(value string) (ContentStatus, bool) {
	switch ContentStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case ContentStatusPending:
		return ContentStatusPending, true
	case ContentStatusApproved:
		return ContentStatusApproved, true
	case ContentStatusRejected:
		return ContentStatusRejected, true
	default:
		return "", false
	}
}

func (s ContentStatus) Terminal() bool {
	return s == ContentStatusApproved || s == ContentStatusRejected
}
