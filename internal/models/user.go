// Package models provides the data models for goUserRegistry.
package models

// User is a registered user. Gender is stored exactly as submitted and DOB
// is a calendar date in YYYY-MM-DD form.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Gender   string `json:"gender"`
	DOB      string `json:"dob"`
}
