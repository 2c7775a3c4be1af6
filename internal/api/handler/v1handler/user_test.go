package v1handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"userapi/internal/api/handler/v1handler"
	mockusers "userapi/internal/users/mock"
	"userapi/pkg/domain"
	"userapi/pkg/logger"
	"userapi/pkg/serrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	// initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func newTestMux(t *testing.T) (*mockusers.MockService, *http.ServeMux) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mockusers.NewMockService(ctrl)

	mux := http.NewServeMux()
	v1handler.New(v1handler.Deps{Users: svc}).Register(mux)

	return svc, mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	return rec
}

func decodeUser(t *testing.T, rec *httptest.ResponseRecorder) v1handler.UserResponse {
	t.Helper()

	var user v1handler.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))

	return user
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) v1handler.ErrorResponse {
	t.Helper()

	var body v1handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestCreateUser_Created(t *testing.T) {
	svc, mux := newTestMux(t)

	id := uuid.New()
	svc.EXPECT().Create(gomock.Any(), domain.UserInput{
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "1234567890",
	}).Return(&domain.User{
		ID:    domain.UserID(id),
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "1234567890",
	}, nil)

	rec := doJSON(t, mux, http.MethodPost, "/api/users",
		`{"name":"John Doe","email":"john@example.com","phone":"1234567890"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	user := decodeUser(t, rec)
	require.Equal(t, id, user.ID)
	require.Equal(t, "John Doe", user.Name)
	require.Equal(t, "john@example.com", user.Email)
	require.Equal(t, "1234567890", user.Phone)
}

func TestCreateUser_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"name too short", `{"name":"J","email":"john@example.com","phone":"1234567890"}`},
		{"name too long", `{"name":"` + strings.Repeat("a", 101) + `","email":"john@example.com","phone":"1234567890"}`},
		{"bad email", `{"name":"John Doe","email":"not-an-email","phone":"1234567890"}`},
		{"missing email", `{"name":"John Doe","phone":"1234567890"}`},
		{"phone with letters", `{"name":"John Doe","email":"john@example.com","phone":"12345abcde"}`},
		{"phone too short", `{"name":"John Doe","email":"john@example.com","phone":"123456789"}`},
		{"phone too long", `{"name":"John Doe","email":"john@example.com","phone":"1234567890123456"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// service must never be reached on invalid input
			_, mux := newTestMux(t)

			rec := doJSON(t, mux, http.MethodPost, "/api/users", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, serrors.ErrBadRequest.Error(), decodeError(t, rec).Code)
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, mux := newTestMux(t)

	svc.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrConflict, "Email already exists: john@example.com"))

	rec := doJSON(t, mux, http.MethodPost, "/api/users",
		`{"name":"John Doe","email":"john@example.com","phone":"1234567890"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeError(t, rec)
	require.Equal(t, serrors.ErrConflict.Error(), body.Code)
	require.Contains(t, body.Message, "john@example.com")
}

func TestListUsers(t *testing.T) {
	svc, mux := newTestMux(t)

	svc.EXPECT().All(gomock.Any()).Return([]domain.User{
		{Name: "John Doe", Email: "john@example.com"},
		{Name: "Jane Doe", Email: "jane@example.com"},
	}, nil)

	rec := doJSON(t, mux, http.MethodGet, "/api/users", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var items []v1handler.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	require.Equal(t, "John Doe", items[0].Name)
	require.Equal(t, "Jane Doe", items[1].Name)
}

func TestListUsers_Empty(t *testing.T) {
	svc, mux := newTestMux(t)

	svc.EXPECT().All(gomock.Any()).Return(nil, nil)

	rec := doJSON(t, mux, http.MethodGet, "/api/users", "")

	require.Equal(t, http.StatusOK, rec.Code)
	// empty list must serialize as [], not null
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetUser(t *testing.T) {
	svc, mux := newTestMux(t)
	id := uuid.New()

	svc.EXPECT().ByID(gomock.Any(), domain.UserID(id)).
		Return(&domain.User{ID: domain.UserID(id), Name: "John Doe"}, nil)

	rec := doJSON(t, mux, http.MethodGet, "/api/users/"+id.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, id, decodeUser(t, rec).ID)
}

func TestGetUser_NotFound(t *testing.T) {
	svc, mux := newTestMux(t)
	id := uuid.New()

	svc.EXPECT().ByID(gomock.Any(), domain.UserID(id)).
		Return(nil, serrors.With(serrors.ErrNotFound, "User not found with id: %s", id))

	rec := doJSON(t, mux, http.MethodGet, "/api/users/"+id.String(), "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	require.Equal(t, serrors.ErrNotFound.Error(), body.Code)
	require.Contains(t, body.Message, id.String())
}

func TestGetUser_MalformedID(t *testing.T) {
	_, mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/users/not-a-uuid", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUser(t *testing.T) {
	svc, mux := newTestMux(t)
	id := uuid.New()

	svc.EXPECT().Update(gomock.Any(), domain.UserID(id), domain.UserInput{
		Name:  "John Q. Doe",
		Email: "john@example.com",
		Phone: "0987654321",
	}).Return(&domain.User{
		ID:    domain.UserID(id),
		Name:  "John Q. Doe",
		Email: "john@example.com",
		Phone: "0987654321",
	}, nil)

	rec := doJSON(t, mux, http.MethodPut, "/api/users/"+id.String(),
		`{"name":"John Q. Doe","email":"john@example.com","phone":"0987654321"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "John Q. Doe", decodeUser(t, rec).Name)
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc, mux := newTestMux(t)
	id := uuid.New()

	svc.EXPECT().Update(gomock.Any(), domain.UserID(id), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrNotFound, "User not found with id: %s", id))

	rec := doJSON(t, mux, http.MethodPut, "/api/users/"+id.String(),
		`{"name":"John Doe","email":"john@example.com","phone":"1234567890"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser_DuplicateEmail(t *testing.T) {
	svc, mux := newTestMux(t)
	id := uuid.New()

	svc.EXPECT().Update(gomock.Any(), domain.UserID(id), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrConflict, "Email already exists: jane@example.com"))

	rec := doJSON(t, mux, http.MethodPut, "/api/users/"+id.String(),
		`{"name":"John Doe","email":"jane@example.com","phone":"1234567890"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteUser(t *testing.T) {
	svc, mux := newTestMux(t)
	id := uuid.New()

	svc.EXPECT().Delete(gomock.Any(), domain.UserID(id)).Return(nil)

	rec := doJSON(t, mux, http.MethodDelete, "/api/users/"+id.String(), "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc, mux := newTestMux(t)
	id := uuid.New()

	svc.EXPECT().Delete(gomock.Any(), domain.UserID(id)).
		Return(serrors.With(serrors.ErrNotFound, "User not found with id: %s", id))

	rec := doJSON(t, mux, http.MethodDelete, "/api/users/"+id.String(), "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOperationalErrorRedacted(t *testing.T) {
	svc, mux := newTestMux(t)

	svc.EXPECT().All(gomock.Any()).Return(nil, errors.New("pq: connection refused"))

	rec := doJSON(t, mux, http.MethodGet, "/api/users", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	require.Equal(t, serrors.ErrInternal.Error(), body.Code)
	require.Equal(t, "internal error", body.Message)
	require.NotContains(t, rec.Body.String(), "connection refused")
}
