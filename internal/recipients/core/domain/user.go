package domain

import "github.com/google/uuid"

// User is a directory entity. Users are immutable once fetched and unique by
// username.
type User struct {
	Username string
	Email    string
	Admin    bool
}

// Page is one directory fetch result. ElementsCount is the total number of
// elements available upstream, not the size of this page; callers use it to
// decide whether further pages must be fetched.
type Page struct {
	Elements      []User
	ElementsCount int
}

// RecipientSettings describes how to select recipients for one dispatch.
// When GroupID is set, resolution targets group-membership lookup; otherwise
// the organization-wide user lookup.
type RecipientSettings struct {
	OnlyAdmins            bool
	IgnoreUserPreferences bool
	GroupID               *uuid.UUID
	Users                 []string
}
