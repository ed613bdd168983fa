package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	request "summit_contracting/internal/adapter/http/dto/request"
	response "summit_contracting/internal/adapter/http/dto/response"
	"summit_contracting/internal/infrastructure/export"
	"summit_contracting/internal/usecase"
	"summit_contracting/pkg"
)

var (
	errInvalidSessionPayload = pkg.NewDomainErrorSimple("INVALID_SESSION_INPUT", "Invalid session payload", http.StatusBadRequest)
)

// SessionHandler handles HTTP requests for proposal editor sessions: open,
// edit, save, the navigation guard, export and teardown.

type SessionHandler struct {
	manager  *usecase.SessionManager
	exporter *export.Service
}

func NewSessionHandler(manager *usecase.SessionManager, exporter *export.Service) *SessionHandler {
	return &SessionHandler{manager: manager, exporter: exporter}
}

// OpenSession opens an editor session, hydrating a persisted quote when
// quote_id is provided.
func (h *SessionHandler) OpenSession(c *gin.Context) {
	// An empty body means "new quote"; a present but malformed one is rejected.
	var payload request.OpenSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidSessionPayload.HTTPStatus, errInvalidSessionPayload.ToHTTPError())
			return
		}
	}

	s, err := h.manager.Open(c.Request.Context(), payload.QuoteID)
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromSnapshot(s.Snapshot()))
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	s, err := h.manager.Get(c.Param("session_id"))
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromSnapshot(s.Snapshot()))
}

// ApplyEdit replaces the session's document with the posted form value.
func (h *SessionHandler) ApplyEdit(c *gin.Context) {
	s, err := h.manager.Get(c.Param("session_id"))
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var payload request.QuoteDocumentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSessionPayload.HTTPStatus, errInvalidSessionPayload.ToHTTPError())
		return
	}

	doc, err := payload.ToEntity()
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if err := s.ApplyEdit(c.Request.Context(), doc); err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromSnapshot(s.Snapshot()))
}

// ClearDocument resets the form to editor defaults, keeping quote identity.
func (h *SessionHandler) ClearDocument(c *gin.Context) {
	s, err := h.manager.Get(c.Param("session_id"))
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if err := s.Clear(c.Request.Context()); err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromSnapshot(s.Snapshot()))
}

// SaveNow is the user's explicit save.
func (h *SessionHandler) SaveNow(c *gin.Context) {
	s, err := h.manager.Get(c.Param("session_id"))
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if err := s.Save(c.Request.Context()); err != nil {
		log.Printf("[session][handler] manual save failed session_id=%s err=%v", s.ID(), err)
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromSnapshot(s.Snapshot()))
}

// ReportIntent runs the navigation guard against a client-reported intent.
func (h *SessionHandler) ReportIntent(c *gin.Context) {
	s, err := h.manager.Get(c.Param("session_id"))
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var payload request.NavigationIntentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSessionPayload.HTTPStatus, errInvalidSessionPayload.ToHTTPError())
		return
	}

	intent, err := payload.ToEntity()
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	prompt, res, err := s.HandleIntent(c.Request.Context(), intent)
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.NavigationResponse{Prompt: prompt, Resolution: res})
}

// ResolveIntent answers the pending leave prompt with the user's decision.
func (h *SessionHandler) ResolveIntent(c *gin.Context) {
	s, err := h.manager.Get(c.Param("session_id"))
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var payload request.NavigationDecisionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSessionPayload.HTTPStatus, errInvalidSessionPayload.ToHTTPError())
		return
	}

	decision, err := payload.ToEntity()
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	res, err := s.ResolveIntent(c.Request.Context(), decision)
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.NavigationResponse{Resolution: res})
}

// ExportPDF renders the proposal and records the exported fingerprint so the
// session can report staleness afterwards.
func (h *SessionHandler) ExportPDF(c *gin.Context) {
	s, err := h.manager.Get(c.Param("session_id"))
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	snap := s.Snapshot()
	result, err := h.exporter.ExportPDF(snap.Quote, snap.Totals, snap.Estimate)
	if err != nil {
		log.Printf("[session][handler] export failed session_id=%s err=%v", s.ID(), err)
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	s.MarkExported()

	c.Header("Content-Disposition", "attachment; filename=\""+result.Filename+"\"")
	c.Data(http.StatusOK, result.MimeType, result.Data)
}

// CloseSession tears the session down, discarding unsaved changes.
func (h *SessionHandler) CloseSession(c *gin.Context) {
	if err := h.manager.Close(c.Request.Context(), c.Param("session_id")); err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

// AnyUnsaved reports whether any open session in the process has unsaved
// changes; list views use it for their navigation affordances.
func (h *SessionHandler) AnyUnsaved(c *gin.Context) {
	unsaved, err := h.manager.AnyUnsaved(c.Request.Context())
	if err != nil {
		appErr := mapSessionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.UnsavedResponse{AnyUnsaved: unsaved})
}

func mapSessionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, request.ErrInvalidPriceValue),
		errors.Is(err, request.ErrInvalidPricingMode),
		errors.Is(err, request.ErrInvalidSectionType),
		errors.Is(err, request.ErrInvalidNavigationKind),
		errors.Is(err, request.ErrInvalidDecisionValue),
		errors.Is(err, usecase.ErrInvalidIntent),
		errors.Is(err, usecase.ErrInvalidDecision):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrSessionNotFound):
		return pkg.NewDomainErrorSimple("SESSION_NOT_FOUND", "Editor session not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSessionClosed):
		return pkg.NewDomainErrorSimple("SESSION_CLOSED", "Editor session already closed", http.StatusConflict)
	case errors.Is(err, usecase.ErrSessionNotReady):
		return pkg.NewDomainErrorSimple("SESSION_NOT_READY", "Editor session still hydrating", http.StatusConflict)
	case errors.Is(err, usecase.ErrSaveInFlight):
		return pkg.NewDomainErrorSimple("SAVE_IN_FLIGHT", "A save is already in flight", http.StatusConflict)
	case errors.Is(err, usecase.ErrNothingToSave):
		return pkg.NewDomainErrorSimple("NOTHING_TO_SAVE", "Quote has no owning project yet", http.StatusConflict)
	case errors.Is(err, usecase.ErrEstimateSaveFailed):
		return pkg.NewDomainErrorSimple("ESTIMATE_SAVE_FAILED", "Delegated estimate save failed", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrIntentPending):
		return pkg.NewDomainErrorSimple("INTENT_PENDING", "A navigation intent is already pending", http.StatusConflict)
	case errors.Is(err, usecase.ErrNoPendingIntent):
		return pkg.NewDomainErrorSimple("NO_PENDING_INTENT", "No navigation intent pending", http.StatusNotFound)
	case errors.Is(err, export.ErrPDFDependencyMissing):
		return pkg.NewDomainErrorSimple("PDF_RENDERER_UNAVAILABLE", "PDF renderer not available", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
