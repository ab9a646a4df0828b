package model

import "time"

type User struct {
	ID          string    `json:"id"`
	CognitoSub  string    `json:"cognitoSub"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Principal is the authenticated identity a session or request acts for.
type Principal struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"displayName,omitempty" yaml:"display_name,omitempty"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
}

func (u User) Principal() Principal {
	return Principal{ID: u.ID, DisplayName: u.DisplayName, Email: u.Email}
}
