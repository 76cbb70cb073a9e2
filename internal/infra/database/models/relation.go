package models

import (
	"time"
)

// Like is a join row between a user and a liked target. The unique index
// is what serializes concurrent like toggles for one pair; existence of
// the row is the sole source of truth, there is no boolean flag.
type Like struct {
	ID         string    `json:"id" gorm:"primaryKey;type:text"`
	LikedBy    string    `json:"likedBy" gorm:"type:text;not null;uniqueIndex:uniq_like;index"`
	User       User      `json:"-" gorm:"foreignKey:LikedBy;references:ID;constraint:OnDelete:CASCADE;"`
	TargetKind string    `json:"targetKind" gorm:"type:text;not null;uniqueIndex:uniq_like"`
	TargetID   string    `json:"targetID" gorm:"type:text;not null;uniqueIndex:uniq_like;index"`
	CreatedAt  time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// Subscription is a join row between a subscriber and a channel, with the
// same uniqueness discipline as Like.
type Subscription struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	SubscriberID string    `json:"subscriberID" gorm:"type:text;not null;uniqueIndex:uniq_subscription;index"`
	Subscriber   User      `json:"-" gorm:"foreignKey:SubscriberID;references:ID;constraint:OnDelete:CASCADE;"`
	ChannelID    string    `json:"channelID" gorm:"type:text;not null;uniqueIndex:uniq_subscription;index"`
	Channel      User      `json:"-" gorm:"foreignKey:ChannelID;references:ID;constraint:OnDelete:CASCADE;"`
	CreatedAt    time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Playlist struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	OwnerID     string    `json:"ownerID" gorm:"type:text;not null;index"`
	Owner       User      `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE;"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt   time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// PlaylistVideo links a video into a playlist. Position keeps insertion
// order so playlists render deterministically.
type PlaylistVideo struct {
	PlaylistID string    `json:"playlistID" gorm:"primaryKey;type:text"`
	Playlist   Playlist  `json:"-" gorm:"foreignKey:PlaylistID;references:ID;constraint:OnDelete:CASCADE;"`
	VideoID    string    `json:"videoID" gorm:"primaryKey;type:text"`
	Video      Video     `json:"-" gorm:"foreignKey:VideoID;references:ID;constraint:OnDelete:CASCADE;"`
	Position   int       `json:"position" gorm:"type:integer;not null;default:0"`
	CreatedAt  time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
