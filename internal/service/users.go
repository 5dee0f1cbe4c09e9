// Package service implements user registration and listing on top of the
// in-memory store.
package service

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/chybatronik/goUserRegistry/internal/models"
	"github.com/chybatronik/goUserRegistry/internal/types"
	"github.com/chybatronik/goUserRegistry/internal/validation"
	pkgerrors "github.com/chybatronik/goUserRegistry/pkg/errors"
)

// UserRepository is the storage the service needs.
type UserRepository interface {
	Exists(username string) bool
	Insert(user models.User) (models.User, error)
	Snapshot() []models.User
}

// UserService validates requests and applies them to the repository.
type UserService struct {
	repo UserRepository
	now  func() time.Time
}

// Option configures a UserService.
type Option func(*UserService)

// WithClock overrides the clock used to decide what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *UserService) {
		s.now = now
	}
}

// NewUserService creates a UserService backed by repo.
func NewUserService(repo UserRepository, opts ...Option) *UserService {
	s := &UserService{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser validates input and stores a new user.
//
// Checks run in a fixed order and the first failure is returned: username
// format, username uniqueness, date of birth, gender. The store is not
// touched unless every check passes.
func (s *UserService) CreateUser(input types.CreateUserInput) (models.User, error) {
	if !validation.IsValidUsername(input.Username) {
		return models.User{}, pkgerrors.ErrInvalidUsername
	}

	if s.repo.Exists(input.Username) {
		return models.User{}, pkgerrors.ErrDuplicateUsername
	}

	if !validation.IsValidDateOfBirth(input.DOB, s.now()) {
		return models.User{}, pkgerrors.ErrInvalidDateOfBirth
	}

	if !validation.IsValidGender(input.Gender) {
		return models.User{}, pkgerrors.ErrInvalidGender
	}

	return s.repo.Insert(models.User{
		Username: input.Username,
		Gender:   input.Gender,
		DOB:      input.DOB,
	})
}

// ParseListUsersQuery materializes list parameters from a query string.
// Absent values take their defaults; non-numeric page or limit is rejected.
func ParseListUsersQuery(query url.Values) (types.ListUsersParams, error) {
	params := types.DefaultListUsersParams()

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return params, pkgerrors.ErrInvalidPagination
		}
		params.Page = page
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return params, pkgerrors.ErrInvalidPagination
		}
		params.Limit = limit
	}

	params.Gender = query.Get("gender")

	if raw := query.Get("sortBy"); raw != "" {
		params.SortBy = raw
	}

	return params, nil
}

// ListUsers filters, sorts and paginates a snapshot of the store.
//
// Only SortBy "dob" sorts (stable, earliest first); any other value keeps
// insertion order. A page past the end is empty, not an error.
func (s *UserService) ListUsers(params types.ListUsersParams) (types.UserPage, error) {
	if params.Page < 1 || params.Limit < 1 {
		return types.UserPage{}, pkgerrors.ErrInvalidPagination
	}

	if params.Gender != "" && !validation.IsValidGender(params.Gender) {
		return types.UserPage{}, pkgerrors.ErrInvalidGenderFilter
	}

	users := s.repo.Snapshot()

	if params.Gender != "" {
		want := validation.NormalizeGender(params.Gender)
		users = slices.DeleteFunc(users, func(u models.User) bool {
			return validation.NormalizeGender(u.Gender) != want
		})
	}

	if params.SortBy == types.SortByDOB {
		// YYYY-MM-DD compares chronologically as a string.
		slices.SortStableFunc(users, func(a, b models.User) int {
			return strings.Compare(a.DOB, b.DOB)
		})
	}

	total := len(users)
	start := total
	if offset := params.Page - 1; offset <= total/params.Limit {
		start = min(offset*params.Limit, total)
	}
	end := start + min(params.Limit, total-start)

	page := make([]models.User, end-start)
	copy(page, users[start:end])

	return types.UserPage{
		Users: page,
		Pagination: types.Pagination{
			TotalUsers:  total,
			CurrentPage: params.Page,
			TotalPages:  totalPages(total, params.Limit),
			Limit:       params.Limit,
		},
	}, nil
}

// totalPages is ceil(total/limit) without overflowing on large limits.
func totalPages(total, limit int) int {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
