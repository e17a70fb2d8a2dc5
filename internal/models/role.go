package models

import (
	"encoding/json"
	"fmt"
)

// Role is the closed set of user roles. The zero value is Guest, which is
// also what an unauthenticated caller gets.
type Role int

const (
	RoleGuest Role = iota
	RoleAttendee
	RoleOrganizer
	RoleCoOrganizer
)

var roleNames = map[Role]string{
	RoleGuest:       "Guest",
	RoleAttendee:    "Attendee",
	RoleOrganizer:   "Organizer",
	RoleCoOrganizer: "CoOrganizer",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole maps a role name back to its Role value.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return RoleGuest, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	role, err := ParseRole(s)
	if err != nil {
		return err
	}

	*r = role

	return nil
}
