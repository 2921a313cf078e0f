package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
	"github.com/GregMSThompson/bookkeeping-backend/internal/middleware"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
)

type stubUserService struct {
	called          bool
	ctx             context.Context
	uid, email      string
	first, lastName string
	user            *models.User
	err             error
}

func (s *stubUserService) CreateUser(ctx context.Context, uid, email, first, last string) error {
	s.called = true
	s.ctx = ctx
	s.uid = uid
	s.email = email
	s.first = first
	s.lastName = last
	return s.err
}

func (s *stubUserService) GetUser(_ context.Context, uid string) (*models.User, error) {
	s.uid = uid
	return s.user, s.err
}

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	noContentCalled bool

	handleErrorCalled bool
	handleError       error

	errorWriteCalled bool
	errorWriteStatus int
	errorWriteCode   string
	errorWriteMsg    string
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":true}`))
}

func (s *stubResponseHandler) WriteNoContent(w http.ResponseWriter, _ *http.Request) {
	s.noContentCalled = true
	w.WriteHeader(http.StatusNoContent)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, code, message string) {
	s.errorWriteCalled = true
	s.errorWriteStatus = status
	s.errorWriteCode = code
	s.errorWriteMsg = message
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

// withUID injects a UID into the request context.
func withUID(r *http.Request, uid string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UIDKey, uid)
	return r.WithContext(ctx)
}

// withChiParam injects a chi URL parameter into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

func isValidationError(err error) bool {
	var ve *errs.ValidationError
	return errors.As(err, &ve)
}

func TestCreateUserSuccess(t *testing.T) {
	userSvc := &stubUserService{}
	resp := &stubResponseHandler{}

	h := NewUserHandlers(&Deps{
		ResponseHandler: resp,
		UserSvc:         userSvc,
	})

	body := `{"firstname":"Jane","lastname":"Doe"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UIDKey, "uid-123")
	ctx = context.WithValue(ctx, middleware.EmailKey, "jane@example.com")
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	h.CreateUser(rr, req)

	if !userSvc.called {
		t.Fatalf("expected CreateUser to be called on service")
	}
	if userSvc.uid != "uid-123" || userSvc.email != "jane@example.com" {
		t.Fatalf("service received wrong identifiers: uid=%s email=%s", userSvc.uid, userSvc.email)
	}
	if userSvc.first != "Jane" || userSvc.lastName != "Doe" {
		t.Fatalf("service received wrong name: %s %s", userSvc.first, userSvc.lastName)
	}

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("WriteSuccess not called with status 200")
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected response status: %d", rr.Code)
	}
}

func TestCreateUserInvalidJSON(t *testing.T) {
	userSvc := &stubUserService{}
	resp := &stubResponseHandler{}

	h := NewUserHandlers(&Deps{
		ResponseHandler: resp,
		UserSvc:         userSvc,
	})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("not-json"))
	rr := httptest.NewRecorder()

	h.CreateUser(rr, req)

	if userSvc.called {
		t.Fatalf("CreateUser should not be called on service when JSON invalid")
	}
	if !resp.handleErrorCalled || !isValidationError(resp.handleError) {
		t.Fatalf("HandleError should receive a validation error, got %v", resp.handleError)
	}
}

func TestCreateUserMissingName(t *testing.T) {
	userSvc := &stubUserService{}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"firstname":"Jane"}`))
	h.CreateUser(httptest.NewRecorder(), withUID(req, "uid-123"))

	if userSvc.called {
		t.Fatalf("service should not be called when lastname is missing")
	}
	if !isValidationError(resp.handleError) {
		t.Fatalf("expected validation error, got %v", resp.handleError)
	}
}

func TestCreateUserServiceError(t *testing.T) {
	userSvc := &stubUserService{err: errors.New("service failure")}
	resp := &stubResponseHandler{}

	h := NewUserHandlers(&Deps{
		ResponseHandler: resp,
		UserSvc:         userSvc,
	})

	body := `{"firstname":"Jane","lastname":"Doe"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.CreateUser(rr, req)

	if !userSvc.called {
		t.Fatalf("expected CreateUser to be called on service")
	}

	if !resp.handleErrorCalled {
		t.Fatalf("expected handler to delegate error to ResponseHandler.HandleError")
	}
	if !errors.Is(resp.handleError, userSvc.err) {
		t.Fatalf("unexpected error passed to HandleError: %v", resp.handleError)
	}
	if resp.writeSuccessCalled {
		t.Fatalf("WriteSuccess should not be called on service error")
	}
}

func TestGetMe(t *testing.T) {
	userSvc := &stubUserService{user: &models.User{UID: "uid-123", Email: "jane@example.com"}}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	h.GetMe(httptest.NewRecorder(), withUID(req, "uid-123"))

	if userSvc.uid != "uid-123" {
		t.Fatalf("service received uid %q", userSvc.uid)
	}
	if resp.writeSuccessData != userSvc.user {
		t.Fatalf("unexpected payload: %#v", resp.writeSuccessData)
	}
}
