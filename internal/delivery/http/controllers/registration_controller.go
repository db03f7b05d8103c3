package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "eventhive/internal/delivery/http/helpers"
	"eventhive/internal/delivery/http/middleware"
	"eventhive/internal/domain"
)

// RegisterRequest is the request body for POST /registrations/{eventID}.
// AccessCode is only consulted for private events that configured one.
type RegisterRequest struct {
	AccessCode string `json:"access_code"`
}

// RegisterResponse is the data payload for POST /registrations/{eventID} (201).
type RegisterResponse struct {
	Registration *domain.Registration `json:"registration"`
	Message      string               `json:"message"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register for an event
// @Description Registers the authenticated user for the event. Confirmed while seats remain, waitlisted once the event is full. Private events may require an access code or an allowed email domain. A user holds at most one registration per event, even after cancelling.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RegisterRequest false "Access code for gated private events"
// @Success 201 {object} helpers.APIResponse "data contains the registration and a message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (already registered, event not open)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (wrong access code or email domain)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{eventID} [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req RegisterRequest
	if r.ContentLength > 0 {
		if !h.DecodeAndValidate(w, r, &req) {
			return
		}
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	reg, err := c.Service.Register(r.Context(), eventID, claims.UserID, claims.Email, req.AccessCode)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrEventNotAvailable):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "event is not open for registration")
		case errors.Is(err, domain.ErrAlreadyRegistered):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "already registered for this event")
		case errors.Is(err, domain.ErrInvalidAccessCode):
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "invalid access code")
		case errors.Is(err, domain.ErrDomainNotAllowed):
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "email domain not allowed for this event")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	msg := "Successfully registered for event"
	if reg.Status == domain.RegistrationStatusWaitlist {
		msg = "Added to waitlist"
	}
	h.WriteJSONSuccess(w, http.StatusCreated, RegisterResponse{Registration: reg, Message: msg})
}

// Cancel godoc
// @Summary Cancel a registration
// @Description Cancels the authenticated user's registration for the event. Frees a seat only if the registration was confirmed.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (already cancelled)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{eventID} [delete]
func (c *RegistrationController) Cancel(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Cancel(r.Context(), eventID, claims.UserID); err != nil {
		switch {
		case errors.Is(err, domain.ErrRegistrationNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "registration not found")
		case errors.Is(err, domain.ErrAlreadyCancelled):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "registration already cancelled")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "cancelled"})
}

// ListMyRegistrations godoc
// @Summary List the current user's confirmed registrations
// @Description Returns the authenticated user's confirmed registrations together with their events. Requires Bearer token.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of registrations with events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/my-registrations [get]
func (c *RegistrationController) ListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	regs, err := c.Service.ListMyRegistrations(r.Context(), claims.UserID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if regs == nil {
		regs = []*domain.RegistrationWithEvent{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, regs)
}

// ListEventAttendees godoc
// @Summary List confirmed attendees of an event
// @Description Returns name, email, and registration date of each confirmed attendee. Only the event's organizer may call this.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an array of attendees"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/event/{eventID}/attendees [get]
func (c *RegistrationController) ListEventAttendees(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	attendees, err := c.Service.ListEventAttendees(r.Context(), eventID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrForbidden):
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "forbidden")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, attendees)
}
