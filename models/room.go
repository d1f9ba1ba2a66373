package models

// Room is a catalog record. The room number is the natural key; rooms are
// never mutated by the reservation flow, only by catalog management.
type Room struct {
	RoomNr             string  `bson:"roomNr" json:"roomNr"`
	Floor              int     `bson:"floor" json:"floor"`
	MaxOccupancy       int     `bson:"maxOccupancy" json:"maxOccupancy"`
	Available          bool    `bson:"available" json:"available"`
	BasePrice          int64   `bson:"basePrice" json:"basePrice"` // nightly rate in whole currency units
	RoomType           string  `bson:"roomType" json:"roomType"`   // e.g. "Single", "Double", "Suite"
	HasSeaView         bool    `bson:"hasSeaView" json:"hasSeaView"`
	HasBalcony         bool    `bson:"hasBalcony" json:"hasBalcony"`
	HasWifi            bool    `bson:"hasWifi" json:"hasWifi"`
	HasAirConditioning bool    `bson:"hasAirConditioning" json:"hasAirConditioning"`
	PetFriendly        bool    `bson:"petFriendly" json:"petFriendly"`
	Amenities          string  `bson:"amenities,omitempty" json:"amenities,omitempty"` // e.g. "Pool Access, Free Breakfast"
	Rating             float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	PreferredFor       string  `bson:"preferredFor,omitempty" json:"preferredFor,omitempty"`
}

// RoomQuote pairs a room with the price for a concrete stay.
type RoomQuote struct {
	Room  Room  `json:"room"`
	Price int64 `json:"price"`
}
