package model

import "time"

const (
	ReviewQuoteSourceGoogle = "google"
	ReviewQuoteSourceMerged = "merged"
)

// ReviewQuote is a third-party review snippet of a place. Quotes are unique
// by exact Text within a place and are never updated once inserted.
type ReviewQuote struct {
	Id         string     `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	PlaceID    string     `gorm:"index;not null" json:"place_id"`
	Author     *string    `json:"author"`
	Rating     *float64   `json:"rating"`
	Text       string     `gorm:"not null" json:"text"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	Source     string     `json:"source"`
}
