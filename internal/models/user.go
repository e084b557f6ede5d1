package models

import "time"

// User maps an external chat identity to an internal numeric id. Users are
// created lazily on first contact and looked up by ExternalID thereafter.
type User struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"`
	Username   string    `json:"username,omitempty"`
	FullName   string    `json:"full_name,omitempty"`
	CreatedAt  time.Time `json:"-"`
}

// ProfileHints carries the optional display attributes a transport may know
// about a user at first contact.
type ProfileHints struct {
	Username string
	FullName string
}
