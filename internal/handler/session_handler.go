package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/service"
	appErrors "github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/errors"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/response"
)

// SessionHandler exposes the console view sessions: each connected client
// opens one, navigates it, and polls its state. Server push events refresh
// open sessions in place, so a poll after a schedule mutation already shows
// the updated week.
type SessionHandler struct {
	registry *service.WeekViewRegistry
}

// NewSessionHandler constructs handler.
func NewSessionHandler(registry *service.WeekViewRegistry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

type sessionNavigateRequest struct {
	Date         string `json:"date"`
	DepartmentID string `json:"departmentId"`
	ClassID      string `json:"classId"`
	TeacherID    string `json:"teacherId"`
	Type         string `json:"type"`
}

type sessionStateResponse struct {
	SessionID      string                  `json:"session_id"`
	Schedule       *models.WeeklySchedule  `json:"schedule"`
	References     *models.ReferenceBundle `json:"references,omitempty"`
	InitialLoading bool                    `json:"initial_loading"`
	Refreshing     bool                    `json:"refreshing"`
	Error          string                  `json:"error,omitempty"`
}

func sessionState(id string, state service.WeekViewState) sessionStateResponse {
	resp := sessionStateResponse{
		SessionID:      id,
		Schedule:       state.Schedule,
		References:     state.References,
		InitialLoading: state.InitialLoading,
		Refreshing:     state.Refreshing,
	}
	if state.Err != nil {
		resp.Error = appErrors.FromError(state.Err).Message
	}
	return resp
}

// Open godoc
// @Summary Open a weekly view session
// @Tags Sessions
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /schedules/weekly/sessions [post]
func (h *SessionHandler) Open(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	id := h.registry.Open(claims.UserID, claims.Role, time.Now())
	response.Created(c, sessionStateResponse{SessionID: id, InitialLoading: true})
}

// State godoc
// @Summary Snapshot of a view session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} response.Envelope
// @Router /schedules/weekly/sessions/{id} [get]
func (h *SessionHandler) State(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	view, err := h.registry.View(c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessionState(c.Param("id"), view.State()))
}

// Navigate godoc
// @Summary Move a view session to another week or filter
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param payload body sessionNavigateRequest true "Navigation target"
// @Success 202 {object} response.Envelope
// @Router /schedules/weekly/sessions/{id}/navigate [post]
func (h *SessionHandler) Navigate(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	view, err := h.registry.View(c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req sessionNavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reference := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD"))
			return
		}
		reference = parsed
	}

	view.Navigate(reference, models.WeekFilter{
		DepartmentID: req.DepartmentID,
		ClassID:      req.ClassID,
		TeacherID:    req.TeacherID,
	}, models.ScheduleTypeFilter(req.Type))
	response.JSON(c, http.StatusAccepted, sessionState(c.Param("id"), view.State()))
}

// Close godoc
// @Summary Close a view session
// @Tags Sessions
// @Param id path string true "Session id"
// @Success 204
// @Router /schedules/weekly/sessions/{id} [delete]
func (h *SessionHandler) Close(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.registry.Close(c.Param("id"), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
