package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pumpcare/connect/internal/auth"
	"github.com/pumpcare/connect/internal/config"
	"github.com/pumpcare/connect/internal/httperr"
	"github.com/pumpcare/connect/internal/middleware"
	"github.com/pumpcare/connect/internal/model"
	"github.com/pumpcare/connect/internal/queue"
	"github.com/pumpcare/connect/internal/repository"
)

// VillagerHandler manages villager records and villager-filed feedback.
type VillagerHandler struct {
	Cfg       config.Config
	Villagers VillagerStore
	Feedback  FeedbackStore
	Events    FeedbackPublisher
}

func NewVillagerHandler(cfg config.Config, v VillagerStore, f FeedbackStore, e FeedbackPublisher) *VillagerHandler {
	return &VillagerHandler{Cfg: cfg, Villagers: v, Feedback: f, Events: e}
}

type villagerReq struct {
	HouseNo    uint64 `json:"house_no"`
	Name       string `json:"villager_name"`
	ContactNo  string `json:"contact_no"`
	OperatorID uint64 `json:"v_pump_operator_id"`
	Email      string `json:"v_email"`
	Password   string `json:"v_password"`
}

// Add handles POST /addvillager and /adminAddVillager.
func (h *VillagerHandler) Add(c echo.Context) error {
	var req villagerReq
	if err := c.Bind(&req); err != nil {
		return httperr.Write(c, httperr.New(httperr.Validation, "invalid request body"))
	}
	if req.HouseNo == 0 || req.Name == "" || req.ContactNo == "" || req.Email == "" || req.Password == "" {
		return httperr.Write(c, httperr.New(httperr.Validation, "Please provide all required fields"))
	}
	if !validPhone(req.ContactNo) {
		return httperr.Write(c, httperr.New(httperr.Validation, "Please enter a valid 10-digit contact number"))
	}
	if !validEmail(req.Email) {
		return httperr.Write(c, httperr.New(httperr.Validation, "Please enter a valid email address"))
	}

	hash, err := auth.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return httperr.Write(c, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	err = h.Villagers.Create(ctx, model.Villager{
		HouseNo:      req.HouseNo,
		Name:         req.Name,
		ContactNo:    req.ContactNo,
		OperatorID:   req.OperatorID,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return httperr.Write(c, httperr.New(httperr.Conflict, "Villager already exists. Please choose a different email or house number."))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Villager added successfully", "villagerId": req.HouseNo})
}

// Fetch handles GET /fetchVillager/:house_no and /adminFetchVillager/:house_no.
func (h *VillagerHandler) Fetch(c echo.Context) error {
	houseNo, err := paramID(c, "house_no")
	if err != nil {
		return httperr.Write(c, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	v, err := h.Villagers.GetByHouseNo(ctx, houseNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperr.Write(c, httperr.New(httperr.NotFound, "Villager not found"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Update handles PUT /updateVillager/:house_no and /adminUpdateVillager/:house_no.
func (h *VillagerHandler) Update(c echo.Context) error {
	houseNo, err := paramID(c, "house_no")
	if err != nil {
		return httperr.Write(c, err)
	}
	var req villagerReq
	if err := c.Bind(&req); err != nil {
		return httperr.Write(c, httperr.New(httperr.Validation, "invalid request body"))
	}
	if req.Name == "" || req.ContactNo == "" || req.Email == "" {
		return httperr.Write(c, httperr.New(httperr.Validation, "Please provide all required fields"))
	}
	if !validPhone(req.ContactNo) {
		return httperr.Write(c, httperr.New(httperr.Validation, "Please enter a valid 10-digit contact number"))
	}
	if !validEmail(req.Email) {
		return httperr.Write(c, httperr.New(httperr.Validation, "Please enter a valid email address"))
	}

	var hash string
	if req.Password != "" {
		if hash, err = auth.HashPassword(req.Password, h.Cfg.BcryptCost); err != nil {
			return httperr.Write(c, err)
		}
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	err = h.Villagers.Update(ctx, model.Villager{
		HouseNo:      houseNo,
		Name:         req.Name,
		ContactNo:    req.ContactNo,
		OperatorID:   req.OperatorID,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return httperr.Write(c, httperr.New(httperr.NotFound, "Villager not found"))
		case errors.Is(err, repository.ErrDuplicate):
			return httperr.Write(c, httperr.New(httperr.Conflict, "Villager email already exists"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Villager updated successfully"})
}

// Delete handles DELETE /deleteVillager/:house_no and /adminDeleteVillager/:house_no.
func (h *VillagerHandler) Delete(c echo.Context) error {
	houseNo, err := paramID(c, "house_no")
	if err != nil {
		return httperr.Write(c, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Villagers.Delete(ctx, houseNo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperr.Write(c, httperr.New(httperr.NotFound, "Villager not found"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Villager deleted successfully"})
}

// ComplaintsByHouse handles GET /fetchNoOfComplaints/:house_no. The route is
// public: it backs the complaint-count widget shown before login.
func (h *VillagerHandler) ComplaintsByHouse(c echo.Context) error {
	houseNo, err := paramID(c, "house_no")
	if err != nil {
		return httperr.Write(c, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Feedback.ListByHouse(ctx, houseNo)
	if err != nil {
		return httperr.Write(c, err)
	}
	if len(items) == 0 {
		return httperr.Write(c, httperr.New(httperr.NotFound, "No complaint details found for the given house ID"))
	}
	return c.JSON(http.StatusOK, items)
}

// AddFeedback handles POST /addFeedback. The filing house number comes from
// the villager's token. The created event is published best-effort in the
// background so a broker outage never fails the request.
func (h *VillagerHandler) AddFeedback(c echo.Context) error {
	houseNo, _, _, ok := middleware.Principal(c)
	if !ok {
		return httperr.Write(c, httperr.New(httperr.Unauthorized, "Unauthorized"))
	}
	var req struct {
		Description string `json:"description"`
		OperatorID  uint64 `json:"f_pump_operator_id"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Write(c, httperr.New(httperr.Validation, "invalid request body"))
	}
	if req.Description == "" {
		return httperr.Write(c, httperr.New(httperr.Validation, "description is required"))
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	issued := time.Now().UTC()
	if req.OperatorID == 0 {
		// Default the complaint to the operator serving this house.
		if v, err := h.Villagers.GetByHouseNo(ctx, houseNo); err == nil {
			req.OperatorID = v.OperatorID
		}
	}
	id, err := h.Feedback.Create(ctx, model.Feedback{
		HouseNo:     houseNo,
		Description: req.Description,
		DateIssued:  issued,
		OperatorID:  req.OperatorID,
		Status:      model.FeedbackOpen,
	})
	if err != nil {
		return httperr.Write(c, err)
	}

	if h.Events != nil {
		ev := queue.FeedbackCreatedEvent{
			FeedbackID:  id,
			HouseNo:     houseNo,
			OperatorID:  req.OperatorID,
			Description: req.Description,
			IssuedAt:    issued.Format(time.RFC3339),
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			if err := h.Events.PublishFeedbackCreated(pubCtx, ev); err != nil {
				log.Printf("feedback: publish event failed: %v", err)
			}
		}()
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Feedback submitted successfully", "feedbackId": id})
}
