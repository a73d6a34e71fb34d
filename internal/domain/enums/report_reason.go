package enums

import "strings"

type ReportReason string

const (
	ReportReasonSpam          ReportReason = "SPAM"
	ReportReasonFake          ReportReason = "FAKE"
	ReportReasonAbusive       ReportReason = "ABUSIVE"
	ReportReasonInappropriate ReportReason = "INAPPROPRIATE"
	ReportReasonOther         ReportReason = "OTHER"
)

func ParseReportReason(value string) (ReportReason, bool) {
	switch ReportReason(strings.ToUpper(strings.TrimSpace(value))) {
	case ReportReasonSpam:
		return ReportReasonSpam, true
	case ReportReasonFake:
		return ReportReasonFake, true
	case ReportReasonAbusive:
		return ReportReasonAbusive, true
	case ReportReasonInappropriate:
		return ReportReasonInappropriate, true
	case ReportReasonOther:
		return ReportReasonOther, true
	default:
		return "", false
	}
}
