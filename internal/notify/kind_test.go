package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindKnown(t *testing.T) {
	assert.True(t, KindNewFollower.known())
	assert.True(t, KindNewPostLike.known())
	assert.True(t, KindNewPostComment.known())
	assert.True(t, KindNewCommentLike.known())
	assert.False(t, Kind("NEW_BADGE").known())
	assert.False(t, Kind("").known())
}

func TestKindAggregatesByRelated(t *testing.T) {
	assert.False(t, KindNewFollower.aggregatesByRelated())
	assert.True(t, KindNewPostLike.aggregatesByRelated())
	assert.True(t, KindNewPostComment.aggregatesByRelated())
	assert.True(t, KindNewCommentLike.aggregatesByRelated())
}

func TestKindMessage(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNewFollower, "Lan vừa đã theo dõi bạn."},
		{KindNewPostLike, "Lan và 2 người khác đã thích bài viết của bạn: Phở bò"},
		{KindNewPostComment, "Lan và 2 người khác đã bình luận về bài viết của bạn: Phở bò"},
		{KindNewCommentLike, "Lan và 2 người khác đã thích bình luận của bạn: Phở bò"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.message("Lan", "2", "Phở bò"))
		})
	}
	assert.Empty(t, Kind("NEW_BADGE").message("Lan", "2", "Phở bò"))
}

func TestKindBody(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNewFollower, "Lan vừa theo dõi bạn."},
		{KindNewPostLike, "Lan vừa thích bài viết của bạn: Phở bò"},
		{KindNewPostComment, "Lan vừa bình luận bài viết của bạn: Phở bò"},
		{KindNewCommentLike, "Lan vừa thích bình luận của bạn: Phở bò"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.body("Lan", "Phở bò"))
		})
	}
}

func TestKindTitle(t *testing.T) {
	assert.Equal(t, "Người theo dõi mới", KindNewFollower.title())
	assert.Equal(t, "Lượt thích mới", KindNewPostLike.title())
	assert.Equal(t, "Bình luận mới", KindNewPostComment.title())
	assert.Equal(t, "Lượt thích bình luận", KindNewCommentLike.title())
}
