// Package types provides shared types for the goUserRegistry service
package types

import "github.com/chybatronik/goUserRegistry/internal/models"

// Sort keys understood by ListUsers.
const (
	SortByDOB = "dob"
)

// Defaults applied when a query parameter is absent.
const (
	DefaultPage   = 1
	DefaultLimit  = 10
	DefaultSortBy = SortByDOB
)

// CreateUserInput is the decoded body of a user registration request.
type CreateUserInput struct {
	Username string `json:"username"`
	Gender   string `json:"gender"`
	DOB      string `json:"dob"`
}

// ListUsersParams is the materialized list query. Gender is empty when no
// filter was requested.
type ListUsersParams struct {
	Page   int
	Limit  int
	Gender string
	SortBy string
}

// DefaultListUsersParams returns the query used when no parameters are given.
func DefaultListUsersParams() ListUsersParams {
	return ListUsersParams{
		Page:   DefaultPage,
		Limit:  DefaultLimit,
		SortBy: DefaultSortBy,
	}
}

// Pagination is the metadata returned alongside a page of users.
type Pagination struct {
	TotalUsers  int `json:"totalUsers"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Limit       int `json:"limit"`
}

// UserPage is one page of a list result.
type UserPage struct {
	Users      []models.User `json:"users"`
	Pagination Pagination    `json:"pagination"`
}
