package model

// BookingAction is what happened to a booking.
type BookingAction string

const (
	BookingCreated BookingAction = "created"
	BookingUpdated BookingAction = "updated"
	BookingDeleted BookingAction = "deleted"
)

// BookingEvent announces a booking change made through the console.
type BookingEvent struct {
	Tenant    string
	RoomID    int64
	BookingID int64
	Title     string
	Action    BookingAction
}
