package models

// Booking is a committed reservation of one room, keyed by (roomNr, startDate).
// Dates are "YYYY-MM-DD" strings throughout; the ISO form keeps lexical order
// equal to chronological order, which the overlap queries rely on.
// A booking row only ever exists after settlement (or an admin direct entry);
// there is no pending row while a checkout session is open.
type Booking struct {
	RoomNr      string `bson:"roomNr" json:"roomNr"`
	StartDate   string `bson:"startDate" json:"startDate"`
	EndDate     string `bson:"endDate" json:"endDate"`
	Price       int64  `bson:"price" json:"price"`
	ClientEmail string `bson:"clientEmail" json:"clientEmail"`
}

// Occupancy links a client to a booking. Created atomically with the booking
// on the payment path, deleted with it on cancellation. The admin direct-entry
// path creates none.
type Occupancy struct {
	ClientEmail string `bson:"clientEmail" json:"clientEmail"`
	RoomNr      string `bson:"roomNr" json:"roomNr"`
	StartDate   string `bson:"startDate" json:"startDate"`
}

// BookingInput is the request body for booking creation and updates.
type BookingInput struct {
	RoomNr      string `json:"roomNr" binding:"required"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
	ClientEmail string `json:"clientEmail,omitempty"` // admin path only; client path uses the authenticated email
}
