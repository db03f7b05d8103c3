package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "eventhive/internal/delivery/http/helpers"
	"eventhive/internal/delivery/http/middleware"
	"eventhive/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	EventType      string     `json:"event_type"`
	Date           *time.Time `json:"date"`
	StartTime      string     `json:"start_time"`
	Location       string     `json:"location"`
	IsVirtual      bool       `json:"is_virtual"`
	Capacity       int        `json:"capacity"`
	Image          string     `json:"image"`
	Tags           []string   `json:"tags"`
	Status         string     `json:"status"`
	IsPrivate      bool       `json:"is_private"`
	AccessCode     string     `json:"access_code"`
	AllowedDomains []string   `json:"allowed_domains"`
}

// Validate implements Validator. Field-level checks beyond these (capacity
// bounds, status transitions) live in the service.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Description) == "" {
		errs = append(errs, "description is required")
	}
	if strings.TrimSpace(c.Category) == "" {
		errs = append(errs, "category is required")
	}
	if c.EventType != "" && c.EventType != string(domain.EventTypePublic) && c.EventType != string(domain.EventTypeCorporate) {
		errs = append(errs, "event_type must be \"public\" or \"corporate\"")
	}
	if c.Date == nil {
		errs = append(errs, "date is required")
	}
	if strings.TrimSpace(c.StartTime) == "" {
		errs = append(errs, "start_time is required")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	if c.Capacity <= 0 {
		errs = append(errs, "capacity must be positive")
	}
	if c.Image != "" && !strings.HasPrefix(c.Image, "data:image/") {
		errs = append(errs, "image must be a base64 data URL")
	}
	return errs
}

// UpdateEventRequest is the request body for PUT /events/{eventID}.
// All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Category       *string    `json:"category"`
	EventType      *string    `json:"event_type"`
	Date           *time.Time `json:"date"`
	StartTime      *string    `json:"start_time"`
	Location       *string    `json:"location"`
	IsVirtual      *bool      `json:"is_virtual"`
	Capacity       *int       `json:"capacity"`
	Image          *string    `json:"image"`
	Tags           *[]string  `json:"tags"`
	Status         *string    `json:"status"`
	IsPrivate      *bool      `json:"is_private"`
	AccessCode     *string    `json:"access_code"`
	AllowedDomains *[]string  `json:"allowed_domains"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.Capacity != nil && *u.Capacity <= 0 {
		errs = append(errs, "capacity must be positive")
	}
	if u.Image != nil && *u.Image != "" && !strings.HasPrefix(*u.Image, "data:image/") {
		errs = append(errs, "image must be a base64 data URL")
	}
	if u.Status != nil && !domain.ValidEventStatus(domain.EventStatus(*u.Status)) {
		errs = append(errs, "status must be one of draft, published, cancelled, completed")
	}
	return errs
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a new event
// @Description Create an event. The authenticated user becomes the organizer and must have the organizer role. New events start as draft unless status "published" is given.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not an organizer)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event := &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		EventType:   domain.EventType(req.EventType),
		OrganizerID: claims.UserID,
		Date:        *req.Date,
		StartTime:   req.StartTime,
		Location:    req.Location,
		IsVirtual:   req.IsVirtual,
		Capacity:    req.Capacity,
		Image:       req.Image,
		Tags:        req.Tags,
		Status:      domain.EventStatus(req.Status),
		AccessControl: domain.AccessControl{
			IsPrivate:      req.IsPrivate,
			AccessCode:     req.AccessCode,
			AllowedDomains: req.AllowedDomains,
		},
	}
	created, err := c.Service.Create(r.Context(), event)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "only organizers can create events")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, created)
}

// List godoc
// @Summary List events
// @Description Returns events matching the optional filters. Anonymous callers see only public events; authenticated callers also see private ones.
// @Tags events
// @Produce json
// @Param search query string false "Filter by title or description substring (case-insensitive)"
// @Param category query string false "Filter by category"
// @Param event_type query string false "Filter by event type (public or corporate)"
// @Param status query string false "Filter by lifecycle status"
// @Param upcoming query bool false "Only events dated today or later"
// @Success 200 {object} helpers.APIResponse "data is an array of events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.EventFilter{
		Search:       strings.TrimSpace(q.Get("search")),
		Category:     strings.TrimSpace(q.Get("category")),
		EventType:    domain.EventType(strings.TrimSpace(q.Get("event_type"))),
		Status:       domain.EventStatus(strings.TrimSpace(q.Get("status"))),
		UpcomingOnly: q.Get("upcoming") == "true",
	}
	_, authenticated := middleware.ClaimsFromContext(r.Context())
	events, err := c.Service.List(r.Context(), filter, authenticated)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetByID godoc
// @Summary Get an event by ID
// @Description Returns the event. Private events are visible only to authenticated callers.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (private event, anonymous caller)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	_, authenticated := middleware.ClaimsFromContext(r.Context())
	event, err := c.Service.GetByID(r.Context(), eventID, authenticated)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "forbidden")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListMyEvents godoc
// @Summary List events organized by the current user
// @Description Returns events where the authenticated user is the organizer. Requires Bearer token.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/my-events [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListMyEvents(r.Context(), claims.UserID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// Update godoc
// @Summary Update an event
// @Description Updates event fields. Only the organizer can update. Omitted fields are unchanged; registered_count cannot be set through this endpoint.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	update := domain.EventUpdate{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Date:           req.Date,
		StartTime:      req.StartTime,
		Location:       req.Location,
		IsVirtual:      req.IsVirtual,
		Capacity:       req.Capacity,
		Image:          req.Image,
		Tags:           req.Tags,
		IsPrivate:      req.IsPrivate,
		AccessCode:     req.AccessCode,
		AllowedDomains: req.AllowedDomains,
	}
	if req.EventType != nil {
		et := domain.EventType(*req.EventType)
		update.EventType = &et
	}
	if req.Status != nil {
		st := domain.EventStatus(*req.Status)
		update.Status = &st
	}
	event, err := c.Service.Update(r.Context(), eventID, claims.UserID, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Delete an event and all its registrations. Only the organizer can delete. Requires authentication.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.Delete(r.Context(), eventID, claims.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "forbidden")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}
