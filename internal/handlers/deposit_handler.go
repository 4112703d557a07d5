package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tireshop/backoffice/internal/dto"
	"github.com/tireshop/backoffice/internal/httperr"
	"github.com/tireshop/backoffice/internal/httpresp"
	"github.com/tireshop/backoffice/internal/middleware"
	ucDeposit "github.com/tireshop/backoffice/internal/usecase/deposit"
)

type DepositHandler struct {
	create       *ucDeposit.CreateDeposit
	get          *ucDeposit.GetDeposit
	list         *ucDeposit.ListDeposits
	changeStatus *ucDeposit.ChangeDepositStatus
	release      *ucDeposit.ReleaseDeposit
	summary      *ucDeposit.DepositSummary
}

func NewDepositHandler(
	create *ucDeposit.CreateDeposit,
	get *ucDeposit.GetDeposit,
	list *ucDeposit.ListDeposits,
	changeStatus *ucDeposit.ChangeDepositStatus,
	release *ucDeposit.ReleaseDeposit,
	summary *ucDeposit.DepositSummary,
) *DepositHandler {
	return &DepositHandler{
		create:       create,
		get:          get,
		list:         list,
		changeStatus: changeStatus,
		release:      release,
		summary:      summary,
	}
}

// --------- Requests ---------

type CreateDepositRequest struct {
	ClientID    uint   `json:"client_id" binding:"required"`
	DepositDate string `json:"deposit_date"`
	PickupDate  string `json:"pickup_date" binding:"required"`
	TireSize    string `json:"tire_size" binding:"max=50"`
	TireType    string `json:"tire_type" binding:"max=50"`
	Quantity    int    `json:"quantity" binding:"omitempty,min=1,max=16"`
	Location    string `json:"location" binding:"max=100"`
	Notes       string `json:"notes"`
	Reserved    bool   `json:"reserved"`
}

type ReleaseDepositRequest struct {
	ReleaseDate   string `json:"release_date"`
	ReleasePerson string `json:"release_person"`
	ReleaseNotes  string `json:"release_notes"`
}

// --------- Handlers ---------

func (h *DepositHandler) Create(c *gin.Context) {
	var req CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	d, err := h.create.Execute(c.Request.Context(), ucDeposit.CreateDepositInput{
		ClientID:    req.ClientID,
		DepositDate: req.DepositDate,
		PickupDate:  req.PickupDate,
		TireSize:    req.TireSize,
		TireType:    req.TireType,
		Quantity:    req.Quantity,
		Location:    req.Location,
		Notes:       req.Notes,
		Reserved:    req.Reserved,
		StaffID:     middleware.StaffID(c),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_deposit")
		return
	}

	httpresp.Created(c, d)
}

func (h *DepositHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_deposit")
		return
	}

	httpresp.OK(c, gin.H{
		"deposit":          view.Deposit,
		"effective_status": view.EffectiveStatus,
	})
}

// List accepts status as a comma separated list or a repeated parameter.
func (h *DepositHandler) List(c *gin.Context) {
	var statuses []string
	for _, raw := range c.QueryArray("status") {
		statuses = append(statuses, strings.Split(raw, ",")...)
	}

	views, err := h.list.Execute(c.Request.Context(), ucDeposit.ListDepositsInput{
		Statuses: statuses,
		Query:    c.Query("query"),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_deposits")
		return
	}

	list := make([]dto.DepositListDTO, 0, len(views))
	for _, v := range views {
		d := v.Deposit
		list = append(list, dto.DepositListDTO{
			ID:              d.ID,
			ClientID:        d.ClientID,
			ClientName:      d.Client.Name,
			DepositDate:     d.DepositDate,
			PickupDate:      d.PickupDate,
			TireSize:        d.TireSize,
			TireType:        d.TireType,
			Quantity:        d.Quantity,
			Location:        d.Location,
			Status:          d.Status,
			EffectiveStatus: string(v.EffectiveStatus),
			ReleaseDate:     d.ReleaseDate,
			ReleasePerson:   d.ReleasePerson,
		})
	}

	httpresp.List(c, list)
}

func (h *DepositHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	d, err := h.changeStatus.Execute(c.Request.Context(), middleware.StaffID(c), id, req.Status)
	if err != nil {
		httperr.FromError(c, err, "failed_to_change_status")
		return
	}

	httpresp.OK(c, d)
}

func (h *DepositHandler) Release(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ReleaseDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.release.Execute(c.Request.Context(), ucDeposit.ReleaseDepositInput{
		DepositID: id,
		Date:      req.ReleaseDate,
		Person:    req.ReleasePerson,
		Notes:     req.ReleaseNotes,
		StaffID:   middleware.StaffID(c),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_release_deposit")
		return
	}

	httpresp.OK(c, gin.H{
		"deposit":  res.Deposit,
		"warnings": res.Warnings,
	})
}

func (h *DepositHandler) Summary(c *gin.Context) {
	s, err := h.summary.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err, "failed_to_summarize_deposits")
		return
	}

	httpresp.OK(c, s)
}
