package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventhive/internal/delivery/http/helpers"
	"eventhive/internal/delivery/http/middleware"
	"eventhive/internal/domain"
)

type mockRegistrationService struct {
	registration   *domain.Registration
	registrations  []*domain.RegistrationWithEvent
	attendees      []*domain.Attendee
	err            error
	gotAccessCode  string
	cancelledEvent string
}

func (m *mockRegistrationService) Register(ctx context.Context, eventID, userID, userEmail, accessCode string) (*domain.Registration, error) {
	m.gotAccessCode = accessCode
	if m.err != nil {
		return nil, m.err
	}
	return m.registration, nil
}

func (m *mockRegistrationService) Cancel(ctx context.Context, eventID, userID string) error {
	m.cancelledEvent = eventID
	return m.err
}

func (m *mockRegistrationService) ListMyRegistrations(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.registrations, nil
}

func (m *mockRegistrationService) ListEventAttendees(ctx context.Context, eventID, callerID string) ([]*domain.Attendee, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.attendees, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func authedRequest(method, target string, body string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	claims := &domain.TokenClaims{UserID: "u1", Email: "ada@corp.com", Role: "attendee"}
	return r.WithContext(middleware.SetClaims(r.Context(), claims))
}

func TestRegistrationController_Register(t *testing.T) {
	confirmed := &domain.Registration{ID: "r1", EventID: "e1", UserID: "u1", Status: domain.RegistrationStatusConfirmed, RegistrationDate: time.Now()}
	waitlisted := &domain.Registration{ID: "r2", EventID: "e1", UserID: "u1", Status: domain.RegistrationStatusWaitlist, RegistrationDate: time.Now()}

	tests := []struct {
		name        string
		svc         *mockRegistrationService
		body        string
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "confirmed registration",
			svc:         &mockRegistrationService{registration: confirmed},
			wantStatus:  http.StatusCreated,
			wantMessage: "Successfully registered for event",
		},
		{
			name:        "waitlisted registration",
			svc:         &mockRegistrationService{registration: waitlisted},
			wantStatus:  http.StatusCreated,
			wantMessage: "Added to waitlist",
		},
		{
			name:       "event not found",
			svc:        &mockRegistrationService{err: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "event not open",
			svc:        &mockRegistrationService{err: domain.ErrEventNotAvailable},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "already registered",
			svc:        &mockRegistrationService{err: domain.ErrAlreadyRegistered},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "wrong access code",
			svc:        &mockRegistrationService{err: domain.ErrInvalidAccessCode},
			body:       `{"access_code":"nope"}`,
			wantStatus: http.StatusForbidden,
			wantCode:   helpers.ErrCodeForbidden,
		},
		{
			name:       "email domain not allowed",
			svc:        &mockRegistrationService{err: domain.ErrDomainNotAllowed},
			wantStatus: http.StatusForbidden,
			wantCode:   helpers.ErrCodeForbidden,
		},
		{
			name:       "service error",
			svc:        &mockRegistrationService{err: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRegistrationController(testLogger(), tt.svc)

			req := authedRequest(http.MethodPost, "/registrations/e1", tt.body)
			req.SetPathValue("eventID", "e1")
			w := httptest.NewRecorder()

			ctrl.Register(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var resp helpers.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if tt.wantCode != "" {
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Fatalf("expected error code %q, got %+v", tt.wantCode, resp.Error)
				}
			}
			if tt.wantMessage != "" {
				data, ok := resp.Data.(map[string]any)
				if !ok {
					t.Fatalf("expected object data, got %T", resp.Data)
				}
				if data["message"] != tt.wantMessage {
					t.Fatalf("expected message %q, got %v", tt.wantMessage, data["message"])
				}
			}
		})
	}
}

func TestRegistrationController_Register_EmptyBodyAllowed(t *testing.T) {
	svc := &mockRegistrationService{
		registration: &domain.Registration{ID: "r1", Status: domain.RegistrationStatusConfirmed},
	}
	ctrl := NewRegistrationController(testLogger(), svc)

	req := authedRequest(http.MethodPost, "/registrations/e1", "")
	req.SetPathValue("eventID", "e1")
	w := httptest.NewRecorder()

	ctrl.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if svc.gotAccessCode != "" {
		t.Fatalf("expected empty access code, got %q", svc.gotAccessCode)
	}
}

func TestRegistrationController_Register_PassesAccessCode(t *testing.T) {
	svc := &mockRegistrationService{
		registration: &domain.Registration{ID: "r1", Status: domain.RegistrationStatusConfirmed},
	}
	ctrl := NewRegistrationController(testLogger(), svc)

	req := authedRequest(http.MethodPost, "/registrations/e1", `{"access_code":"SECRET42"}`)
	req.SetPathValue("eventID", "e1")
	w := httptest.NewRecorder()

	ctrl.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if svc.gotAccessCode != "SECRET42" {
		t.Fatalf("expected access code to reach the service, got %q", svc.gotAccessCode)
	}
}

func TestRegistrationController_Register_Unauthorized(t *testing.T) {
	ctrl := NewRegistrationController(testLogger(), &mockRegistrationService{})

	req := httptest.NewRequest(http.MethodPost, "/registrations/e1", nil)
	req.SetPathValue("eventID", "e1")
	w := httptest.NewRecorder()

	ctrl.Register(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestRegistrationController_Cancel(t *testing.T) {
	tests := []struct {
		name       string
		svc        *mockRegistrationService
		wantStatus int
	}{
		{"success", &mockRegistrationService{}, http.StatusOK},
		{"not found", &mockRegistrationService{err: domain.ErrRegistrationNotFound}, http.StatusNotFound},
		{"already cancelled", &mockRegistrationService{err: domain.ErrAlreadyCancelled}, http.StatusBadRequest},
		{"service error", &mockRegistrationService{err: errors.New("db down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRegistrationController(testLogger(), tt.svc)

			req := authedRequest(http.MethodDelete, "/registrations/e1", "")
			req.SetPathValue("eventID", "e1")
			w := httptest.NewRecorder()

			ctrl.Cancel(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK && tt.svc.cancelledEvent != "e1" {
				t.Fatalf("expected cancel for e1, got %q", tt.svc.cancelledEvent)
			}
		})
	}
}

func TestRegistrationController_ListMyRegistrations_EmptyIsArray(t *testing.T) {
	ctrl := NewRegistrationController(testLogger(), &mockRegistrationService{})

	req := authedRequest(http.MethodGet, "/registrations/my-registrations", "")
	w := httptest.NewRecorder()

	ctrl.ListMyRegistrations(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if _, ok := resp.Data.([]any); !ok {
		t.Fatalf("expected array data, got %T", resp.Data)
	}
}

func TestRegistrationController_ListEventAttendees(t *testing.T) {
	tests := []struct {
		name       string
		svc        *mockRegistrationService
		wantStatus int
	}{
		{
			name: "organizer sees attendees",
			svc: &mockRegistrationService{attendees: []*domain.Attendee{
				{Name: "Ada", Email: "ada@corp.com", RegistrationDate: time.Now()},
			}},
			wantStatus: http.StatusOK,
		},
		{"not the organizer", &mockRegistrationService{err: domain.ErrForbidden}, http.StatusForbidden},
		{"event not found", &mockRegistrationService{err: domain.ErrNotFound}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRegistrationController(testLogger(), tt.svc)

			req := authedRequest(http.MethodGet, "/registrations/event/e1/attendees", "")
			req.SetPathValue("eventID", "e1")
			w := httptest.NewRecorder()

			ctrl.ListEventAttendees(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
