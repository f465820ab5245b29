package notify

import "fmt"

// Kind identifies a notification event kind. The set is closed: events with
// any other value are dropped so that newer clients can emit kinds this
// server does not understand yet.
type Kind string

const (
	KindNewFollower    Kind = "NEW_FOLLOWER"
	KindNewPostLike    Kind = "NEW_POST_LIKE"
	KindNewPostComment Kind = "NEW_POST_COMMENT"
	KindNewCommentLike Kind = "NEW_COMMENT_LIKE"
)

func (k Kind) known() bool {
	switch k {
	case KindNewFollower, KindNewPostLike, KindNewPostComment, KindNewCommentLike:
		return true
	}
	return false
}

// aggregatesByRelated reports whether the dedup key includes the related
// entity. NEW_FOLLOWER keeps a single row per recipient regardless of which
// follower triggered it.
func (k Kind) aggregatesByRelated() bool {
	return k != KindNewFollower
}

// message renders the stored notification text
func (k Kind) message(actorName, othersCount, title string) string {
	switch k {
	case KindNewFollower:
		return fmt.Sprintf("%s vừa đã theo dõi bạn.", actorName)
	case KindNewPostLike:
		return fmt.Sprintf("%s và %s người khác đã thích bài viết của bạn: %s", actorName, othersCount, title)
	case KindNewPostComment:
		return fmt.Sprintf("%s và %s người khác đã bình luận về bài viết của bạn: %s", actorName, othersCount, title)
	case KindNewCommentLike:
		return fmt.Sprintf("%s và %s người khác đã thích bình luận của bạn: %s", actorName, othersCount, title)
	}
	return ""
}

// body renders the pushed notification text
func (k Kind) body(actorName, title string) string {
	switch k {
	case KindNewFollower:
		return fmt.Sprintf("%s vừa theo dõi bạn.", actorName)
	case KindNewPostLike:
		return fmt.Sprintf("%s vừa thích bài viết của bạn: %s", actorName, title)
	case KindNewPostComment:
		return fmt.Sprintf("%s vừa bình luận bài viết của bạn: %s", actorName, title)
	case KindNewCommentLike:
		return fmt.Sprintf("%s vừa thích bình luận của bạn: %s", actorName, title)
	}
	return ""
}

// title renders the push notification title
func (k Kind) title() string {
	switch k {
	case KindNewFollower:
		return "Người theo dõi mới"
	case KindNewPostLike:
		return "Lượt thích mới"
	case KindNewPostComment:
		return "Bình luận mới"
	case KindNewCommentLike:
		return "Lượt thích bình luận"
	}
	return ""
}
