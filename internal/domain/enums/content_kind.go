package enums

import "strings"

// ContentKind names a moderatable entity type. It selects the target table
// for moderation transitions and the notification wording for outcomes.
type ContentKind string

const (
	ContentKindPost          ContentKind = "post"
	ContentKindReview        ContentKind = "review"
	ContentKindCommunityPost ContentKind = "community_post"
)

func ParseContentKind(value string) (ContentKind, bool) {
	switch ContentKind(strings.ToLower(strings.TrimSpace(value))) {
	case ContentKindPost:
		return ContentKindPost, true
	case ContentKindReview:
		return ContentKindReview, true
	case ContentKindCommunityPost:
		return ContentKindCommunityPost, true
	default:
		return "", false
	}
}
