package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pumpcare/connect/internal/auth"
	"github.com/pumpcare/connect/internal/config"
	"github.com/pumpcare/connect/internal/httperr"
	"github.com/pumpcare/connect/internal/model"
	"github.com/pumpcare/connect/internal/repository"
)

// OperatorHandler manages pump operator records. The same handlers back the
// panchayat-facing routes and the admin* aliases.
type OperatorHandler struct {
	Cfg       config.Config
	Operators OperatorStore
}

func NewOperatorHandler(cfg config.Config, o OperatorStore) *OperatorHandler {
	return &OperatorHandler{Cfg: cfg, Operators: o}
}

type operatorReq struct {
	Name      string `json:"pump_operator_name"`
	ContactNo string `json:"contact_no"`
	Email     string `json:"po_email"`
	Password  string `json:"po_password"`
	NoOfLines int    `json:"no_of_lines"`
}

// Add handles POST /addOperator and /adminAddOperator.
func (h *OperatorHandler) Add(c echo.Context) error {
	var req operatorReq
	if err := c.Bind(&req); err != nil {
		return httperr.Write(c, httperr.New(httperr.Validation, "invalid request body"))
	}
	if req.Name == "" || req.ContactNo == "" || req.Email == "" || req.Password == "" {
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

	id, err := h.Operators.Create(ctx, model.Operator{
		Name:         req.Name,
		ContactNo:    req.ContactNo,
		Email:        req.Email,
		PasswordHash: hash,
		NoOfLines:    req.NoOfLines,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return httperr.Write(c, httperr.New(httperr.Conflict, "Operator already exists. Please choose a different email."))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Operator added successfully", "operatorId": id})
}

// Fetch handles GET /fetchOperator/:id and /adminFetchOperator/:id.
func (h *OperatorHandler) Fetch(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httperr.Write(c, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	o, err := h.Operators.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperr.Write(c, httperr.New(httperr.NotFound, "Operator details not found for the given ID"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// Update handles PUT /updateOperator/:id and /adminUpdateOperator/:id.
func (h *OperatorHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httperr.Write(c, err)
	}
	var req operatorReq
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

	err = h.Operators.Update(ctx, model.Operator{
		ID:           id,
		Name:         req.Name,
		ContactNo:    req.ContactNo,
		Email:        req.Email,
		PasswordHash: hash,
		NoOfLines:    req.NoOfLines,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return httperr.Write(c, httperr.New(httperr.NotFound, "Operator not found"))
		case errors.Is(err, repository.ErrDuplicate):
			return httperr.Write(c, httperr.New(httperr.Conflict, "Operator email already exists"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Operator updated successfully"})
}

// Delete handles DELETE /deleteOperator/:id and /adminDeleteOperator/:id.
func (h *OperatorHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httperr.Write(c, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Operators.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperr.Write(c, httperr.New(httperr.NotFound, "Operator not found"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Operator deleted successfully"})
}

// List handles GET /operators.
func (h *OperatorHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Operators.List(ctx)
	if err != nil {
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
