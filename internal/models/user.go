package models

import "strings"

// User is a participant.
type User struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	Title          string `json:"title"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	StructureLevel string `json:"structure_level"`
	Number         string `json:"number"`
	Email          string `json:"email"`
	IsPresent      bool   `json:"is_present"`
	IsActive       bool   `json:"is_active"`
	GroupsID       []int  `json:"groups_id"`
}

func (u *User) GetID() int         { return u.ID }
func (u *User) Collection() string { return CollectionUser }

func (u *User) VerboseName(plural bool) string {
	if plural {
		return "Participants"
	}
	return "Participant"
}

// FullName joins title, first and last name, falling back to the username.
func (u *User) FullName() string {
	name := strings.Join(strings.Fields(strings.Join([]string{u.Title, u.FirstName, u.LastName}, " ")), " ")
	if name == "" {
		return u.Username
	}
	if u.StructureLevel != "" {
		name += " (" + u.StructureLevel + ")"
	}
	return name
}

func (u *User) FormatForSearch() []string {
	return []string{u.FullName(), u.Username, u.StructureLevel, u.Number}
}
