package storage

import (
	"context"
	"errors"
	"time"

	"ticketgate/internal/models"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrSoldOut            = errors.New("event is sold out")
	ErrAlreadyRegistered  = errors.New("user already registered for this event")
	ErrNotRegistered      = errors.New("user has no active registration for this event")
	ErrAlreadyCoOrganizer = errors.New("user is already a co-organizer for this event")
	ErrNotCoOrganizer     = errors.New("user is not a co-organizer for this event")
	ErrNotEventManager    = errors.New("requester is neither the event creator nor a co-organizer")
	ErrCapacityTooLow     = errors.New("capacity cannot drop below tickets already sold")
)

// EventUpdate carries a partial event update; nil fields keep their
// current value.
type EventUpdate struct {
	Name        *string
	Description *string
	Date        *time.Time
	Price       *float64
	Capacity    *int
}

// EventSales is one row of an organizer's sales report.
type EventSales struct {
	EventID     string  `json:"event_id"`
	Name        string  `json:"name"`
	TicketsSold int     `json:"tickets_sold"`
	Revenue     float64 `json:"revenue"`
}

// TicketView is a confirmed registration joined with its event.
type TicketView struct {
	EventID     string    `json:"event_id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Price       float64   `json:"price"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// AttendeeView is one confirmed attendee of an event.
type AttendeeView struct {
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// Storage is the full persistence surface. Handlers depend on the narrow
// slices they need; this interface exists so main can swap drivers.
type Storage interface {
	CreateUser(ctx context.Context, username, passwordHash string, role models.Role) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)

	CreateEvent(ctx context.Context, ev models.Event) (*models.Event, error)
	Event(ctx context.Context, id string) (*models.Event, error)
	AllEvents(ctx context.Context) ([]models.Event, error)
	UpdateEvent(ctx context.Context, eventID, requesterID string, upd EventUpdate) (*models.Event, error)
	DeleteEvent(ctx context.Context, eventID, requesterID string) error

	PurchaseTicket(ctx context.Context, eventID, userID string) error
	CancelTicket(ctx context.Context, eventID, userID string) error
	TicketsByUser(ctx context.Context, userID string) ([]TicketView, error)
	AttendeesByEvent(ctx context.Context, eventID, requesterID string) ([]AttendeeView, error)
	SalesByOrganizer(ctx context.Context, organizerID string) ([]EventSales, error)

	AssignCoOrganizer(ctx context.Context, eventID, requesterID, targetID string) error
	RemoveCoOrganizer(ctx context.Context, eventID, requesterID, targetID string) error

	RevokeToken(ctx context.Context, token string) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
	PruneRevokedTokens(ctx context.Context, olderThan time.Time) (int64, error)
}
