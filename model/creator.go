package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

Creator is a content producer whose Instagram posts are turned into articles

Id: primary key, use to identify a creator
CreatedAt: time when entity is created
UpdatedAt: time when entity is last refreshed by an upsert

InstagramHandle: natural key, handle without the leading "@", unique
DisplayName: name shown on cards and bylines
InstagramUrl: link to the creator's profile
AvatarUrl: profile image url, optional
Bio: free text biography, optional
Links: free-form map of extra links (tiktok, website...), optional
IsActive: creators are never hard-deleted, only deactivated. Every upsert
	forces this back to true
*/
type Creator struct {
	Id              string         `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	InstagramHandle string         `gorm:"uniqueIndex;not null" json:"instagram_handle"`
	DisplayName     string         `gorm:"not null" json:"display_name"`
	InstagramUrl    string         `json:"instagram_url"`
	AvatarUrl       *string        `json:"avatar_url"`
	Bio             *string        `json:"bio"`
	Links           datatypes.JSON `json:"links"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
}
