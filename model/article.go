package model

import (
	"time"
)

type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
)

/*

Article is the written piece about one Place, authored by one Creator

Id: primary key, use to identify an article
CreatedAt: time when entity is created. The oldest published article of a
	place is its canonical article
UpdatedAt: time when entity is last merged into

Slug: human readable unique identifier used in urls
Title: article title in plain text
Excerpt: short summary, optional
BodyHtml: rich html content, grows with "Update" sections on merge
Status: draft or published, only published articles can be canonical
PublishedAt: time when the article became published

SourcePlatform, SourcePostUrl, SourceUsername: provenance of the first
	submission, never changed by merges

CreatorID:
Creator: author, "belongs-to" relation
PlaceID:
Place: venue this article is about, "belongs-to" relation
*/
type Article struct {
	Id             string        `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time     `gorm:"index:idx_articles_place_canonical,priority:3" json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Slug           string        `gorm:"uniqueIndex;not null" json:"slug"`
	Title          string        `gorm:"not null" json:"title"`
	Excerpt        *string       `json:"excerpt"`
	BodyHtml       string        `gorm:"not null" json:"body_html"`
	Status         ArticleStatus `gorm:"index:idx_articles_place_canonical,priority:2;not null;default:draft" json:"status"`
	PublishedAt    *time.Time    `gorm:"index" json:"published_at"`
	SourcePlatform string        `json:"source_platform"`
	SourcePostUrl  string        `json:"source_post_url"`
	SourceUsername string        `json:"source_username"`
	CreatorID      string        `gorm:"index" json:"creator_id"`
	Creator        *Creator      `json:"creator,omitempty"`
	PlaceID        string        `gorm:"index:idx_articles_place_canonical,priority:1" json:"place_id"`
	Place          *Place        `json:"place,omitempty"`
}
