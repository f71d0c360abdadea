package domain

// User is the identity record written by the authentication subsystem.
// This module only reads it, to gate checkout.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
