package models

import (
	"time"
)

type Video struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	OwnerID     string    `json:"ownerID" gorm:"type:text;not null;index"`
	Owner       User      `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE;"`
	Title       string    `json:"title" gorm:"type:text;not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	VideoFile   string    `json:"videoFile" gorm:"type:text;not null"`
	Thumbnail   string    `json:"thumbnail" gorm:"type:text;not null"`
	Duration    float64   `json:"duration" gorm:"type:double precision;not null;default:0"`
	Views       int64     `json:"views" gorm:"type:bigint;not null;default:0"`
	IsPublished bool      `json:"isPublished" gorm:"type:boolean;not null;default:true;index"`
	CreatedAt   time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp();index"`
	UpdatedAt   time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	VideoID   string    `json:"videoID" gorm:"type:text;not null;index"`
	Video     Video     `json:"-" gorm:"foreignKey:VideoID;references:ID;constraint:OnDelete:CASCADE;"`
	OwnerID   string    `json:"ownerID" gorm:"type:text;not null;index"`
	Owner     User      `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE;"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp();index"`
	UpdatedAt time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Tweet struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	OwnerID   string    `json:"ownerID" gorm:"type:text;not null;index"`
	Owner     User      `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE;"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp();index"`
	UpdatedAt time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}
