package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/middleware"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/service"
	appErrors "github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/errors"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/response"
)

// WeeklyScheduleHandler serves the weekly schedule grid endpoints.
type WeeklyScheduleHandler struct {
	service *service.WeeklyScheduleService
	exports *service.ExportService
}

// NewWeeklyScheduleHandler constructs handler.
func NewWeeklyScheduleHandler(svc *service.WeeklyScheduleService, exports *service.ExportService) *WeeklyScheduleHandler {
	return &WeeklyScheduleHandler{service: svc, exports: exports}
}

// Get godoc
// @Summary Weekly schedule grid
// @Tags Schedules
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD, defaults to today)"
// @Param departmentId query string false "Filter by department"
// @Param classId query string false "Filter by class"
// @Param teacherId query string false "Filter by teacher"
// @Param type query string false "all | study | exam"
// @Success 200 {object} response.Envelope
// @Router /schedules/weekly [get]
func (h *WeeklyScheduleHandler) Get(c *gin.Context) {
	reference := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD"))
			return
		}
		reference = parsed
	}

	req := service.WeeklyScheduleRequest{
		Reference: reference,
		Filter: models.WeekFilter{
			DepartmentID: c.Query("departmentId"),
			ClassID:      c.Query("classId"),
			TeacherID:    c.Query("teacherId"),
		},
		TypeFilter: models.ScheduleTypeFilter(c.DefaultQuery("type", string(models.TypeFilterAll))),
	}

	schedule, err := h.service.GetWeek(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SetMeta(c, "week_start", schedule.Window.StartDate.Format("2006-01-02"))
	response.JSON(c, http.StatusOK, schedule)
}

// References godoc
// @Summary Filter dropdown reference lists
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules/weekly/reference [get]
func (h *WeeklyScheduleHandler) References(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	bundle, err := h.service.References(c.Request.Context(), claims.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bundle)
}

// Export godoc
// @Summary Export the weekly grid
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.ExportRequest true "Export request"
// @Success 201 {object} response.Envelope
// @Router /schedules/weekly/export [post]
func (h *WeeklyScheduleHandler) Export(c *gin.Context) {
	var req service.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.exports.Export(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Download godoc
// @Summary Download a previously exported grid
// @Tags Schedules
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /exports/download [get]
func (h *WeeklyScheduleHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	path, err := h.exports.Resolve(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.File(path)
}

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
