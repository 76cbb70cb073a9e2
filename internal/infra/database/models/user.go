package models

import (
	"time"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	UserName     string    `json:"userName" gorm:"type:text;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"type:text;uniqueIndex;not null"`
	FullName     string    `json:"fullName" gorm:"type:text;not null;index"`
	Avatar       string    `json:"avatar" gorm:"type:text"`
	CoverImage   string    `json:"coverImage" gorm:"type:text"`
	Password     string    `json:"-" gorm:"type:text;not null"`
	RefreshToken string    `json:"-" gorm:"type:text"`
	CreatedAt    time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt    time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type WatchHistory struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	UserID    string    `json:"userID" gorm:"type:text;not null;uniqueIndex:uniq_watch"`
	User      User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
	VideoID   string    `json:"videoID" gorm:"type:text;not null;uniqueIndex:uniq_watch"`
	Video     Video     `json:"-" gorm:"foreignKey:VideoID;references:ID;constraint:OnDelete:CASCADE;"`
	WatchedAt time.Time `json:"watchedAt" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

func (WatchHistory) TableName() string { return "watch_history" }
