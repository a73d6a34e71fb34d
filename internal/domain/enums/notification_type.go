package enums

type NotificationType string

const (
	NotificationPostApproved          NotificationType = "POST_APPROVED"
	NotificationPostRejected          NotificationType = "POST_REJECTED"
	NotificationReviewApproved        NotificationType = "REVIEW_APPROVED"
	NotificationReviewRejected        NotificationType = "REVIEW_REJECTED"
	NotificationCommunityPostApproved NotificationType = "COMMUNITY_POST_APPROVED"
	NotificationCommunityPostRejected NotificationType = "COMMUNITY_POST_REJECTED"
	NotificationReportResolved        NotificationType = "REPORT_RESOLVED"
	NotificationReportDismissed       NotificationType = "REPORT_DISMISSED"
)
