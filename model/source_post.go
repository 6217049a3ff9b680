package model

import "time"

const MediaTypeInstagramPost = "instagram_post"

/*

SourcePost is the raw content a submission was built from. It is only kept
for auditing and future content-hash dedup, the serving path never reads it.

Platform: e.g. "instagram"
PostUrl: link to the original post
Caption, Transcript: raw text of the post, optional
MediaType: kind of media, currently always "instagram_post"
MediaUrl: link to the media, same as PostUrl for now
FetchedAt: time the content was ingested
Hash: sha256 hex of PostUrl + Caption + Transcript
CreatorID, PlaceID: owners of the post
*/
type SourcePost struct {
	Id         string    `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Platform   string    `json:"platform"`
	PostUrl    string    `json:"post_url"`
	Caption    *string   `json:"caption"`
	Transcript *string   `json:"transcript"`
	MediaType  string    `json:"media_type"`
	MediaUrl   string    `json:"media_url"`
	FetchedAt  time.Time `json:"fetched_at"`
	Hash       string    `gorm:"index" json:"hash"`
	CreatorID  string    `gorm:"index" json:"creator_id"`
	PlaceID    string    `gorm:"index" json:"place_id"`
}
