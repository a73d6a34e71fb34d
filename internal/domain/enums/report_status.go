package enums

import "strings"

// ReportStatus mirrors ContentStatus for the report branch of the
// lifecycle: PENDING, then RESOLVED or DISMISSED, both terminal.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusResolved  ReportStatus = "RESOLVED"
	ReportStatusDismissed ReportStatus = "DISMISSED"
)

func ParseReportStatus(value string) (ReportStatus, bool) {
	switch ReportStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case ReportStatusPending:
		return ReportStatusPending, true
	case ReportStatusResolved:
		return ReportStatusResolved, true
	case ReportStatusDismissed:
		return ReportStatusDismissed, true
	default:
		return "", false
	}
}

func (s ReportStatus) Terminal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}
