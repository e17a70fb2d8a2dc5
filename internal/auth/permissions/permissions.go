// Package permissions holds the static role-to-action table. The table is
// fixed at compile time; changing it is a deployment, not a request.
package permissions

import "ticketgate/internal/models"

type Action string

const (
	ActionBrowseEvents      Action = "browse_events"
	ActionPurchaseTickets   Action = "purchase_tickets"
	ActionViewMyTickets     Action = "view_my_tickets"
	ActionCancelTicket      Action = "cancel_ticket"
	ActionCreateEvent       Action = "create_event"
	ActionUpdateEvent       Action = "update_event"
	ActionViewSales         Action = "view_sales"
	ActionViewAttendees     Action = "view_attendees"
	ActionAssignCoOrganizer Action = "assign_coorganizer"
	ActionRemoveCoOrganizer Action = "remove_coorganizer"
	ActionDeleteEvent       Action = "delete_event"
)

var table = map[models.Role][]Action{
	models.RoleGuest: {
		ActionBrowseEvents,
	},
	models.RoleAttendee: {
		ActionBrowseEvents,
		ActionPurchaseTickets,
		ActionViewMyTickets,
		ActionCancelTicket,
	},
	models.RoleOrganizer: {
		ActionBrowseEvents,
		ActionCreateEvent,
		ActionUpdateEvent,
		ActionViewSales,
		ActionViewAttendees,
		ActionAssignCoOrganizer,
		ActionRemoveCoOrganizer,
		ActionDeleteEvent,
	},
	models.RoleCoOrganizer: {
		ActionBrowseEvents,
		ActionUpdateEvent,
		ActionViewAttendees,
	},
}

var sets = func() map[models.Role]map[Action]struct{} {
	m := make(map[models.Role]map[Action]struct{}, len(table))
	for role, actions := range table {
		set := make(map[Action]struct{}, len(actions))
		for _, a := range actions {
			set[a] = struct{}{}
		}
		m[role] = set
	}
	return m
}()

// Allowed reports whether the role may perform the action. Unknown roles
// have no permissions.
func Allowed(role models.Role, action Action) bool {
	_, ok := sets[role][action]
	return ok
}
