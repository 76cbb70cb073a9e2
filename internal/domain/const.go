package domain

const (
	RequesterIdCtxKey      = "vs-requesterId"
	RequesterProfileCtxKey = "vs-requesterProfile"
)

// Like target kinds. One likes collection serves all three, discriminated
// by target_kind; the unique index covers (liked_by, target_kind, target_id).
const (
	LikeTargetVideo   = "video"
	LikeTargetComment = "comment"
	LikeTargetTweet   = "tweet"
)

// Realtime event kinds.
const (
	EventVideoPublished = "video.published"
	EventCommentAdded   = "comment.added"
)
