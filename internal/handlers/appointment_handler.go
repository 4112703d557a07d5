package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/tireshop/backoffice/internal/domain/appointment"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/dto"
	"github.com/tireshop/backoffice/internal/httperr"
	"github.com/tireshop/backoffice/internal/httpresp"
	"github.com/tireshop/backoffice/internal/middleware"
	ucAppointment "github.com/tireshop/backoffice/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	checkConflicts *ucAppointment.CheckConflicts
	save           *ucAppointment.SaveAppointment
	changeStatus   *ucAppointment.ChangeAppointmentStatus
	listByDate     *ucAppointment.ListAppointmentsByDate
}

func NewAppointmentHandler(
	checkConflicts *ucAppointment.CheckConflicts,
	save *ucAppointment.SaveAppointment,
	changeStatus *ucAppointment.ChangeAppointmentStatus,
	listByDate *ucAppointment.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		checkConflicts: checkConflicts,
		save:           save,
		changeStatus:   changeStatus,
		listByDate:     listByDate,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ConflictCheckRequest struct {
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=15,max=480"`
	ExcludeID       uint   `json:"exclude_id"`
}

type SaveAppointmentRequest struct {
	ClientID        uint   `json:"client_id" binding:"required"`
	VehicleID       *uint  `json:"vehicle_id"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=15,max=480"`
	ServiceType     string `json:"service_type" binding:"max=100"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
	Force           bool   `json:"force"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func durationOrDefault(minutes int) int {
	if minutes == 0 {
		return domain.DefaultDurationMinutes
	}
	return minutes
}

func conflictDTOs(conflicts []domain.Booking) []dto.ConflictDTO {
	out := make([]dto.ConflictDTO, 0, len(conflicts))
	for _, b := range conflicts {
		out = append(out, dto.ConflictDTO{
			ID:              b.ID,
			ClientName:      b.ClientName,
			Time:            b.Time.String(),
			DurationMinutes: b.DurationMinutes,
			Label:           b.Label(),
		})
	}
	return out
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		httperr.FromError(c, err, "invalid_date")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// CONFLICTS
// ======================================================

func (h *AppointmentHandler) CheckConflicts(c *gin.Context) {
	var req ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	conflicts, err := h.checkConflicts.Execute(c.Request.Context(), ucAppointment.CheckConflictsInput{
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: durationOrDefault(req.DurationMinutes),
		ExcludeID:       req.ExcludeID,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_check_conflicts")
		return
	}

	httpresp.OK(c, gin.H{
		"has_conflicts": len(conflicts) > 0,
		"conflicts":     conflictDTOs(conflicts),
	})
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	h.saveAppointment(c, 0)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	h.saveAppointment(c, id)
}

func (h *AppointmentHandler) saveAppointment(c *gin.Context, id uint) {
	var req SaveAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.save.Execute(c.Request.Context(), ucAppointment.SaveAppointmentInput{
		ID:              id,
		ClientID:        req.ClientID,
		VehicleID:       req.VehicleID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: durationOrDefault(req.DurationMinutes),
		ServiceType:     req.ServiceType,
		Notes:           req.Notes,
		Status:          req.Status,
		Force:           req.Force,
		StaffID:         middleware.StaffID(c),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_save_appointment")
		return
	}

	if !res.Saved {
		httperr.Conflict(c, "time_conflict",
			"The slot overlaps other appointments. Resend with force=true to save anyway.",
			conflictDTOs(res.Conflicts))
		return
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"appointment": res.Appointment,
		"conflicts":   conflictDTOs(res.Conflicts),
	})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.changeStatus.Execute(c.Request.Context(), middleware.StaffID(c), id, req.Status)
	if err != nil {
		httperr.FromError(c, err, "failed_to_change_status")
		return
	}

	httpresp.OK(c, ap)
}
