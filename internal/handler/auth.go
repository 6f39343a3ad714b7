package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pumpcare/connect/internal/auth"
	"github.com/pumpcare/connect/internal/config"
	"github.com/pumpcare/connect/internal/httperr"
	"github.com/pumpcare/connect/internal/model"
	"github.com/pumpcare/connect/internal/repository"
)

// credentialMismatch is returned for unknown email AND wrong password so the
// response never reveals which part failed.
const credentialMismatch = "Email or Password does not match!!"

// AuthHandler owns the login and signup endpoints for all four roles. The
// role embedded in an issued token is decided by which route authenticated
// the caller; there is one issuing path and one verifying path.
type AuthHandler struct {
	Cfg        config.Config
	Admins     AdminStore
	Panchayats PanchayatStore
	Operators  OperatorStore
	Villagers  VillagerStore
}

func NewAuthHandler(cfg config.Config, a AdminStore, p PanchayatStore, o OperatorStore, v VillagerStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Admins: a, Panchayats: p, Operators: o, Villagers: v}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// credential is the triple every role table can produce for its login route.
type credential struct {
	ID           uint64
	Email        string
	PasswordHash string
}

// lookup finds the credential row for an email within one role table.
type lookup func(ctx context.Context, email string) (credential, error)

// login is the single implementation behind the four role login routes.
func (h *AuthHandler) login(c echo.Context, role string, find lookup) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email and password are required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cred, err := find(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": credentialMismatch})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	if !auth.VerifyPassword(cred.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": credentialMismatch})
	}

	token, err := auth.IssueToken(h.Cfg.JWTSecret, cred.ID, cred.Email, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Login successful", "token": token})
}

// LoginAdmin handles POST /login.
func (h *AuthHandler) LoginAdmin(c echo.Context) error {
	return h.login(c, auth.RoleAdmin, func(ctx context.Context, email string) (credential, error) {
		a, err := h.Admins.GetByEmail(ctx, email)
		return credential{ID: a.ID, Email: a.Email, PasswordHash: a.PasswordHash}, err
	})
}

// LoginPanchayat handles POST /loginp.
func (h *AuthHandler) LoginPanchayat(c echo.Context) error {
	return h.login(c, auth.RolePanchayat, func(ctx context.Context, email string) (credential, error) {
		p, err := h.Panchayats.GetByEmail(ctx, email)
		return credential{ID: p.ID, Email: p.Email, PasswordHash: p.PasswordHash}, err
	})
}

// LoginOperator handles POST /logino.
func (h *AuthHandler) LoginOperator(c echo.Context) error {
	return h.login(c, auth.RoleOperator, func(ctx context.Context, email string) (credential, error) {
		o, err := h.Operators.GetByEmail(ctx, email)
		return credential{ID: o.ID, Email: o.Email, PasswordHash: o.PasswordHash}, err
	})
}

// LoginVillager handles POST /loginv. The villager's house number stands in
// as the principal id.
func (h *AuthHandler) LoginVillager(c echo.Context) error {
	return h.login(c, auth.RoleVillager, func(ctx context.Context, email string) (credential, error) {
		v, err := h.Villagers.GetByEmail(ctx, email)
		return credential{ID: v.HouseNo, Email: v.Email, PasswordHash: v.PasswordHash}, err
	})
}

// ----- signups -----

// SignupAdmin handles POST /signup.
func (h *AuthHandler) SignupAdmin(c echo.Context) error {
	var req struct {
		Name     string `json:"admin_name"`
		Email    string `json:"admin_email"`
		Password string `json:"admin_password"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Write(c, httperr.New(httperr.Validation, "invalid request body"))
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return httperr.Write(c, httperr.New(httperr.Validation, "Please provide all required fields"))
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

	if _, err := h.Admins.Create(ctx, req.Name, req.Email, hash); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return httperr.Write(c, httperr.New(httperr.Conflict, "Admin email already exists. Please choose a different email."))
		}
		return httperr.Write(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Admin signed up successfully"})
}

// SignupPanchayat handles POST /signupp.
func (h *AuthHandler) SignupPanchayat(c echo.Context) error {
	var req struct {
		Name      string `json:"panchayat_name"`
		Location  string `json:"panchayat_loc"`
		PDOName   string `json:"pdo_name"`
		ContactNo string `json:"contact_no"`
		Email     string `json:"p_email"`
		Password  string `json:"p_password"`
	}
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

	_, err = h.Panchayats.Create(ctx, model.Panchayat{
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
	return c.JSON(http.StatusOK, echo.Map{"message": "Panchayat signed up successfully"})
}

// SignupOperator handles POST /signuppo.
func (h *AuthHandler) SignupOperator(c echo.Context) error {
	var req struct {
		Name      string `json:"pump_operator_name"`
		ContactNo string `json:"contact_no"`
		Email     string `json:"po_email"`
		Password  string `json:"po_password"`
		NoOfLines int    `json:"no_of_lines"`
	}
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

	_, err = h.Operators.Create(ctx, model.Operator{
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
	return c.JSON(http.StatusOK, echo.Map{"message": "Operator signed up successfully"})
}

// SignupVillager handles POST /signupv.
func (h *AuthHandler) SignupVillager(c echo.Context) error {
	var req struct {
		HouseNo    uint64 `json:"house_no"`
		Name       string `json:"villager_name"`
		ContactNo  string `json:"contact_no"`
		OperatorID uint64 `json:"v_pump_operator_id"`
		Email      string `json:"v_email"`
		Password   string `json:"v_password"`
	}
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
	return c.JSON(http.StatusOK, echo.Map{"message": "Villager signed up successfully"})
}
