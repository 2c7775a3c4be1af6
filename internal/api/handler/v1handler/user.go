package v1handler

import (
	"encoding/json"
	"net/http"
	"time"
	"userapi/pkg/domain"
	"userapi/pkg/serrors"

	"github.com/google/uuid"
)

// UserRequest is the payload for create and update. Field constraints mirror
// the domain rules: name 2-100 characters, syntactically valid email, phone
// 10-15 digits.
type UserRequest struct {
	Name  string `json:"name"  validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,number,min=10,max=15"`
}

// UserResponse is the representation of a user returned by all endpoints.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

func domainUserToV1(in *domain.User) UserResponse {
	return UserResponse{
		ID:        uuid.UUID(in.ID),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	}
}

// decodeUserRequest reads and validates the request body, returning a
// bad-request semantic error on malformed JSON or constraint violations.
func (h *Handler) decodeUserRequest(r *http.Request) (*UserRequest, error) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "validation failed")
	}

	return &req, nil
}

// pathUserID parses the {id} path segment, returning a bad-request error for
// malformed identifiers.
func pathUserID(r *http.Request) (domain.UserID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return domain.UserID{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid user id")
	}

	return domain.UserID(id), nil
}

// CreateUser handles POST /api/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.decodeUserRequest(r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	user, err := h.deps.Users.Create(ctx, domain.UserInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	writeJSON(w, http.StatusCreated, domainUserToV1(user))
}

// ListUsers handles GET /api/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	all, err := h.deps.Users.All(ctx)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	items := make([]UserResponse, 0, len(all))
	for i := range all {
		items = append(items, domainUserToV1(&all[i]))
	}

	writeJSON(w, http.StatusOK, items)
}

// GetUser handles GET /api/users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUserID(r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	user, err := h.deps.Users.ByID(ctx, id)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	writeJSON(w, http.StatusOK, domainUserToV1(user))
}

// UpdateUser handles PUT /api/users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUserID(r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	req, err := h.decodeUserRequest(r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	user, err := h.deps.Users.Update(ctx, id, domain.UserInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	writeJSON(w, http.StatusOK, domainUserToV1(user))
}

// DeleteUser handles DELETE /api/users/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUserID(r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	if err := h.deps.Users.Delete(ctx, id); err != nil {
		h.writeError(ctx, w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
