package vidstream

import "time"

// ApiResponse is the uniform success envelope every endpoint returns.
type ApiResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ApiError is the uniform failure envelope.
type ApiError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Event is a realtime notification fanned out to websocket listeners.
type Event struct {
	Kind       string    `json:"kind"` // video.published, comment.added
	ChannelID  string    `json:"channelId"`
	ResourceID string    `json:"resourceId"`
	Timestamp  time.Time `json:"timestamp"`
}

// PublicProfile is the allow-listed subset of a user safe to embed in any
// view. Everything else on the user record stays behind the projection.
type PublicProfile struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}
