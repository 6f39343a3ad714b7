package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pumpcare/connect/internal/auth"
	"github.com/pumpcare/connect/internal/httperr"
	"github.com/pumpcare/connect/internal/middleware"
	"github.com/pumpcare/connect/internal/model"
	"github.com/pumpcare/connect/internal/repository"
)

// SectorHandler manages sectors. Creation always assigns ownership from the
// token, and mutations require the caller to own the row unless the caller
// is an admin.
type SectorHandler struct {
	Sectors SectorStore
}

func NewSectorHandler(s SectorStore) *SectorHandler {
	return &SectorHandler{Sectors: s}
}

type sectorReq struct {
	Name       string `json:"sector_name"`
	OperatorID uint64 `json:"pump_operator_id"`
	NoOfTanks  int    `json:"no_of_tanks"`
}

// Add handles POST /addSector. The owning panchayat is the authenticated
// principal; a panchayat_id in the body is ignored.
func (h *SectorHandler) Add(c echo.Context) error {
	pid, _, _, ok := middleware.Principal(c)
	if !ok {
		return httperr.Write(c, httperr.New(httperr.Unauthorized, "Unauthorized"))
	}
	var req sectorReq
	if err := c.Bind(&req); err != nil {
		return httperr.Write(c, httperr.New(httperr.Validation, "invalid request body"))
	}
	if req.Name == "" || req.OperatorID == 0 || req.NoOfTanks == 0 {
		return httperr.Write(c, httperr.New(httperr.Validation, "Please provide all required fields"))
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Sectors.Create(ctx, model.Sector{
		Name:        req.Name,
		PanchayatID: pid,
		OperatorID:  req.OperatorID,
		NoOfTanks:   req.NoOfTanks,
	})
	if err != nil {
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Sector added successfully", "sectorId": id})
}

// Fetch handles GET /fetchSector/:id.
func (h *SectorHandler) Fetch(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httperr.Write(c, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	s, err := h.Sectors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperr.Write(c, httperr.New(httperr.NotFound, "Sector details not found for the given ID"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// Update handles PUT /updateSector/:id.
func (h *SectorHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httperr.Write(c, err)
	}
	var req sectorReq
	if err := c.Bind(&req); err != nil {
		return httperr.Write(c, httperr.New(httperr.Validation, "invalid request body"))
	}
	if req.Name == "" || req.OperatorID == 0 || req.NoOfTanks == 0 {
		return httperr.Write(c, httperr.New(httperr.Validation, "Please provide all required fields"))
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.requireOwnership(c, id); err != nil {
		return httperr.Write(c, err)
	}
	err = h.Sectors.Update(ctx, model.Sector{
		ID:         id,
		Name:       req.Name,
		OperatorID: req.OperatorID,
		NoOfTanks:  req.NoOfTanks,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperr.Write(c, httperr.New(httperr.NotFound, "Sector not found"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Sector updated successfully"})
}

// Delete handles DELETE /deleteSector/:id.
func (h *SectorHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httperr.Write(c, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.requireOwnership(c, id); err != nil {
		return httperr.Write(c, err)
	}
	if err := h.Sectors.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperr.Write(c, httperr.New(httperr.NotFound, "Sector not found"))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Sector deleted successfully"})
}

// requireOwnership is the capability check for sector mutations: the
// operation needs role admin, or role panchayat with principal.id matching
// the sector's owning panchayat.
func (h *SectorHandler) requireOwnership(c echo.Context, sectorID uint64) error {
	pid, _, role, ok := middleware.Principal(c)
	if !ok {
		return httperr.New(httperr.Unauthorized, "Unauthorized")
	}
	if role == auth.RoleAdmin {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	s, err := h.Sectors.GetByID(ctx, sectorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperr.New(httperr.NotFound, "Sector not found")
		}
		return err
	}
	if s.PanchayatID != pid {
		return httperr.New(httperr.Forbidden, "forbidden")
	}
	return nil
}
