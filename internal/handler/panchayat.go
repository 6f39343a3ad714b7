package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pumpcare/connect/internal/auth"
	"github.com/pumpcare/connect/internal/config"
	"github.com/pumpcare/connect/internal/httperr"
	"github.com/pumpcare/connect/internal/middleware"
	"github.com/pumpcare/connect/internal/model"
	"github.com/pumpcare/connect/internal/repository"
)

// PanchayatHandler serves the panchayat self-service endpoints plus the
// admin-side panchayat CRUD and search.
type PanchayatHandler struct {
	Cfg        config.Config
	Panchayats PanchayatStore
	Feedback   FeedbackStore
}

func NewPanchayatHandler(cfg config.Config, p PanchayatStore, f FeedbackStore) *PanchayatHandler {
	return &PanchayatHandler{Cfg: cfg, Panchayats: p, Feedback: f}
}

// Details handles GET /panchayat_details: the logged-in panchayat's own row,
// located by the email inside the token.
func (h *PanchayatHandler) Details(c echo.Context) error {
	_, email, _, ok := middleware.Principal(c)
	if !ok {
		return httperr.Write(c, httperr.New(httperr.Unauthorized, "Unauthorized"))
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	p, err := h.Panchayats.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperr.Write(c, httperr.New(httperr.NotFound, "Panchayat details not found for the given email"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// RecentComplaints handles GET /complaint: the ten newest feedback rows.
func (h *PanchayatHandler) RecentComplaints(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Feedback.ListRecent(ctx, 10)
	if err != nil {
		return httperr.Write(c, err)
	}
	if len(items) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No recent complaints found"})
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateFeedbackStatus handles PUT /updateFeedbackStatus/:id.
func (h *PanchayatHandler) UpdateFeedbackStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httperr.Write(c, err)
	}
	var req struct {
		Status string `json:"feedback_status"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Write(c, httperr.New(httperr.Validation, "invalid request body"))
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != model.FeedbackOpen && status != model.FeedbackResolved {
		return httperr.Write(c, httperr.New(httperr.Validation, "feedback_status must be OPEN or RESOLVED"))
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Feedback.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperr.Write(c, httperr.New(httperr.NotFound, "Feedback not found"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Feedback status updated successfully"})
}

// List handles GET /panchayats.
func (h *PanchayatHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Panchayats.List(ctx)
	if err != nil {
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ----- admin-side panchayat management -----

type panchayatReq struct {
	Name      string `json:"panchayat_name"`
	Location  string `json:"panchayat_loc"`
	PDOName   string `json:"pdo_name"`
	ContactNo string `json:"contact_no"`
	Email     string `json:"p_email"`
	Password  string `json:"p_password"`
}

// Add handles POST /adminAddPanchayat.
func (h *PanchayatHandler) Add(c echo.Context) error {
	var req panchayatReq
	if err := c.Bind(&req); err != nil {
		return httperr.Write(c, httperr.New(httperr.Validation, "invalid request body"))
	}
	if req.Name == "" || req.Location == "" || req.PDOName == "" || req.ContactNo == "" || req.Email == "" || req.Password == "" {
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

	id, err := h.Panchayats.Create(ctx, model.Panchayat{
		Name:         req.Name,
		Location:     req.Location,
		PDOName:      req.PDOName,
		ContactNo:    req.ContactNo,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return httperr.Write(c, httperr.New(httperr.Conflict, "Panchayat already exists. Please choose a different email."))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Panchayat added successfully", "panchayatId": id})
}

// Update handles PUT /adminUpdatePanchayat/:id. A supplied password is
// re-hashed; an empty one leaves the stored hash untouched.
func (h *PanchayatHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httperr.Write(c, err)
	}
	var req panchayatReq
	if err := c.Bind(&req); err != nil {
		return httperr.Write(c, httperr.New(httperr.Validation, "invalid request body"))
	}
	if req.Name == "" || req.Location == "" || req.PDOName == "" || req.ContactNo == "" || req.Email == "" {
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

	err = h.Panchayats.Update(ctx, model.Panchayat{
		ID:           id,
		Name:         req.Name,
		Location:     req.Location,
		PDOName:      req.PDOName,
		ContactNo:    req.ContactNo,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return httperr.Write(c, httperr.New(httperr.NotFound, "Panchayat not found"))
		case errors.Is(err, repository.ErrDuplicate):
			return httperr.Write(c, httperr.New(httperr.Conflict, "Panchayat email already exists"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Panchayat updated successfully"})
}

// Delete handles DELETE /adminDeletePanchayat/:id.
func (h *PanchayatHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httperr.Write(c, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Panchayats.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperr.Write(c, httperr.New(httperr.NotFound, "Panchayat not found"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Panchayat deleted successfully"})
}

// Fetch handles GET /adminFetchPanchayat/:id.
func (h *PanchayatHandler) Fetch(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httperr.Write(c, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	p, err := h.Panchayats.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperr.Write(c, httperr.New(httperr.NotFound, "Panchayat not found"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Search handles GET /adminSearch?query= with a LIKE substring match over
// the descriptive panchayat columns.
func (h *PanchayatHandler) Search(c echo.Context) error {
	query := c.QueryParam("query")

	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Panchayats.Search(ctx, query)
	if err != nil {
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
