package usecase

import "github.com/vidstream/vidstream/view"

// publicProfileFields is the allow-list for embedding a user in any view.
// Credentials and tokens are excluded here once, not per handler.
var publicProfileFields = []string{"id", "user_name", "full_name", "avatar"}

// ownerJoin resolves a record's owner to its public profile.
func ownerJoin() view.Join {
	return view.Join{
		From:       "owner_id",
		Collection: "users",
		To:         "id",
		As:         "owner",
		One:        true,
		Fields:     publicProfileFields,
	}
}

// videoWithOwnerJoin resolves a foreign video reference including its
// owner's public profile.
func videoWithOwnerJoin(from, as string, one bool) view.Join {
	return view.Join{
		From:       from,
		Collection: "videos",
		To:         "id",
		As:         as,
		One:        one,
		Pipeline:   view.Sub().Join(ownerJoin()),
	}
}

var videoViewFields = []string{
	"id", "title", "description", "video_file", "thumbnail",
	"duration", "views", "is_published", "created_at", "owner",
}
