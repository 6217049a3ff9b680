package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

Place is a physical venue, keyed by the Google Place ID

Id: primary key, use to identify a place
CreatedAt: time when entity is created
UpdatedAt: time when entity is last refreshed by an upsert

GooglePlaceId: natural key from the mapping provider, unique
Name: venue name
Address: street address, optional
Lat, Lng: geo coordinates, optional
AvgRating: aggregate rating from the provider, optional
ReviewCount: aggregate review count from the provider, optional
Neighborhood: e.g. "East Nashville", optional
Cuisines: ordered JSON list of cuisine tags, [] when unknown
MapsUrl: link to the provider's map page, optional
ReviewQuotes: third-party review snippets, "has-many" relation
*/
type Place struct {
	Id            string         `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	GooglePlaceId string         `gorm:"uniqueIndex;not null" json:"google_place_id"`
	Name          string         `gorm:"not null" json:"name"`
	Address       *string        `json:"address"`
	Lat           *float64       `json:"lat"`
	Lng           *float64       `json:"lng"`
	AvgRating     *float64       `json:"avg_rating"`
	ReviewCount   *int           `json:"review_count"`
	Neighborhood  *string        `gorm:"index" json:"neighborhood"`
	Cuisines      datatypes.JSON `json:"cuisines"`
	MapsUrl       *string        `json:"maps_url"`
	ReviewQuotes  []ReviewQuote  `gorm:"foreignKey:PlaceID" json:"review_quotes,omitempty"`
}

// CuisineList decodes Cuisines, a malformed column reads as no cuisines.
func (p Place) CuisineList() []string {
	return DecodeStringList(p.Cuisines)
}
