package models

import "time"

type Event struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	Price        float64   `json:"price"`
	Capacity     int       `json:"capacity"`
	TicketsSold  int       `json:"tickets_sold"`
	CreatedBy    string    `json:"created_by"`
	CoOrganizers []string  `json:"co_organizers"`
}

// SoldOut reports whether no tickets remain.
func (e *Event) SoldOut() bool {
	return e.TicketsSold >= e.Capacity
}

// EventListing is the reduced projection shown to guests and attendees.
type EventListing struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
	Date  time.Time `json:"date"`
}

// Listing returns the guest-facing projection of the event.
func (e *Event) Listing() EventListing {
	return EventListing{
		ID:    e.ID,
		Name:  e.Name,
		Price: e.Price,
		Date:  e.Date,
	}
}
