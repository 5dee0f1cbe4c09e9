package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/chybatronik/goUserRegistry/internal/errors"
	"github.com/chybatronik/goUserRegistry/internal/logging"
	"github.com/chybatronik/goUserRegistry/internal/middleware"
	"github.com/chybatronik/goUserRegistry/internal/models"
	"github.com/chybatronik/goUserRegistry/internal/service"
	"github.com/chybatronik/goUserRegistry/internal/types"
	"github.com/chybatronik/goUserRegistry/internal/validation"
	pkgerrors "github.com/chybatronik/goUserRegistry/pkg/errors"
)

// Success messages
const (
	MsgUserCreated   = "Tạo người dùng thành công"
	MsgUsersListed   = "Lấy danh sách người dùng thành công"
	maxLoggedNameLen = 64
)

// UserService is the business logic the user handler delegates to
type UserService interface {
	CreateUser(input types.CreateUserInput) (models.User, error)
	ListUsers(params types.ListUsersParams) (types.UserPage, error)
}

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	logger  *logging.Logger
	service UserService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(logger *logging.Logger, svc UserService) *UserHandler {
	return &UserHandler{
		logger:  logger,
		service: svc,
	}
}

// CreateUserResponse is the 201 body of POST /users
type CreateUserResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

// ListUsersResponse is the 200 body of GET /users
type ListUsersResponse struct {
	Message string         `json:"message"`
	Data    types.UserPage `json:"data"`
}

// ServeHTTP dispatches /users by method
func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetUsers(w, r)
	case http.MethodPost:
		h.CreateUser(w, r)
	default:
		h.requestLogger(r).Warn("Invalid HTTP method for users endpoint",
			logging.FieldHTTPMethod, r.Method,
		)
		errors.WriteMethodNotAllowed(w, "GET, POST")
	}
}

func (h *UserHandler) requestLogger(r *http.Request) *logging.Logger {
	reqID := middleware.GetRequestID(r.Context())
	if reqID == "" {
		reqID = "unknown"
	}
	return h.logger.WithRequestID(reqID)
}

// parseRequestBody decodes the registration body. An empty body decodes to
// an empty input so that field validation reports what is missing.
func (h *UserHandler) parseRequestBody(r *http.Request) (types.CreateUserInput, error) {
	var input types.CreateUserInput
	if r.Body == nil {
		return input, nil
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, validation.MaxRequestBodySize+1))
	if err != nil {
		return input, pkgerrors.ErrInvalidJSON
	}

	if err := validation.ValidatePayloadSize(body, validation.MaxRequestBodySize); err != nil {
		return input, pkgerrors.ErrPayloadTooLarge
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return input, nil
	}

	if err := json.Unmarshal(body, &input); err != nil {
		return input, pkgerrors.ErrInvalidJSON
	}

	return input, nil
}

// writeUserError logs a rejected request and writes its error body
func (h *UserHandler) writeUserError(w http.ResponseWriter, logger *logging.Logger, msg string, err error, args ...any) {
	if userErr, ok := pkgerrors.GetUserError(err); ok {
		args = append(args, logging.FieldErrorCode, userErr.Code)
		logger.Warn(msg, args...)
	} else {
		logger.WithError(err).Error(msg, args...)
	}
	errors.WriteError(w, err)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	logger := h.requestLogger(r)

	input, err := h.parseRequestBody(r)
	if err != nil {
		h.writeUserError(w, logger, "Failed to parse request body", err)
		return
	}

	user, err := h.service.CreateUser(input)
	if err != nil {
		h.writeUserError(w, logger, "User creation rejected", err,
			logging.FieldUsername, validation.TruncateString(input.Username, maxLoggedNameLen),
		)
		return
	}

	logger.Info("User created successfully",
		logging.FieldUserID, user.ID,
		logging.FieldUsername, user.Username,
		"duration_ms", time.Since(startTime).Milliseconds(),
	)

	if err := errors.WriteJSON(w, http.StatusCreated, CreateUserResponse{
		Message: MsgUserCreated,
		User:    user,
	}); err != nil {
		logger.Error("Failed to encode success response", logging.FieldError, err)
	}
}

// GetUsers handles GET /users with pagination, gender filter and sorting
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	logger := h.requestLogger(r)

	params, err := service.ParseListUsersQuery(r.URL.Query())
	if err != nil {
		h.writeUserError(w, logger, "Failed to parse query parameters", err,
			"query", r.URL.RawQuery,
		)
		return
	}

	page, err := h.service.ListUsers(params)
	if err != nil {
		h.writeUserError(w, logger, "User listing rejected", err,
			"page", params.Page,
			"limit", params.Limit,
			"gender", params.Gender,
		)
		return
	}

	logger.Info("Users retrieved successfully",
		logging.FieldUserCount, len(page.Users),
		logging.FieldTotalUsers, page.Pagination.TotalUsers,
		"page", params.Page,
		"limit", params.Limit,
		"sort_by", params.SortBy,
		"duration_ms", time.Since(startTime).Milliseconds(),
	)

	if err := errors.WriteJSON(w, http.StatusOK, ListUsersResponse{
		Message: MsgUsersListed,
		Data:    page,
	}); err != nil {
		logger.Error("Failed to encode GetUsers response", logging.FieldError, err)
	}
}
