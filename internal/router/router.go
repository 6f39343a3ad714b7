// Package router wires HTTP routes to handlers and middleware. Route paths
// keep the names the original frontend calls; groups decide which roles may
// reach which handlers.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/pumpcare/connect/internal/config"
	"github.com/pumpcare/connect/internal/handler"
	"github.com/pumpcare/connect/internal/middleware"

	"github.com/pumpcare/connect/internal/auth"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth      *handler.AuthHandler
	Panchayat *handler.PanchayatHandler
	Sector    *handler.SectorHandler
	Operator  *handler.OperatorHandler
	Villager  *handler.VillagerHandler
}

// Register sets up all routes. rdb may be nil; the rate limiter then
// degrades to a pass-through.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Credential endpoints sit behind the token bucket to slow brute force.
	limited := e.Group("", middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	limited.POST("/login", h.Auth.LoginAdmin)
	limited.POST("/loginp", h.Auth.LoginPanchayat)
	limited.POST("/logino", h.Auth.LoginOperator)
	limited.POST("/loginv", h.Auth.LoginVillager)
	limited.POST("/signup", h.Auth.SignupAdmin)
	limited.POST("/signupp", h.Auth.SignupPanchayat)
	limited.POST("/signuppo", h.Auth.SignupOperator)
	limited.POST("/signupv", h.Auth.SignupVillager)

	// Public complaint count, used by the pre-login widget.
	e.GET("/fetchNoOfComplaints/:house_no", h.Villager.ComplaintsByHouse)

	jwt := middleware.JWTAuth(cfg.JWTSecret)

	// Panchayat self-service.
	pan := e.Group("", jwt, middleware.RequireRole(auth.RolePanchayat))
	pan.GET("/panchayat_details", h.Panchayat.Details)
	pan.GET("/complaint", h.Panchayat.RecentComplaints)
	pan.POST("/addSector", h.Sector.Add)
	pan.POST("/addOperator", h.Operator.Add)
	pan.PUT("/updateFeedbackStatus/:id", h.Panchayat.UpdateFeedbackStatus)

	// Shared management surface for panchayats and admins.
	mgmt := e.Group("", jwt, middleware.RequireRole(auth.RolePanchayat, auth.RoleAdmin))
	mgmt.GET("/fetchSector/:id", h.Sector.Fetch)
	mgmt.PUT("/updateSector/:id", h.Sector.Update)
	mgmt.DELETE("/deleteSector/:id", h.Sector.Delete)
	mgmt.GET("/fetchOperator/:id", h.Operator.Fetch)
	mgmt.PUT("/updateOperator/:id", h.Operator.Update)
	mgmt.DELETE("/deleteOperator/:id", h.Operator.Delete)
	mgmt.GET("/operators", h.Operator.List)
	mgmt.GET("/panchayats", h.Panchayat.List)
	mgmt.POST("/addvillager", h.Villager.Add)
	mgmt.GET("/fetchVillager/:house_no", h.Villager.Fetch)
	mgmt.PUT("/updateVillager/:house_no", h.Villager.Update)
	mgmt.DELETE("/deleteVillager/:house_no", h.Villager.Delete)

	// Admin-only management.
	adm := e.Group("", jwt, middleware.RequireRole(auth.RoleAdmin))
	adm.POST("/adminAddPanchayat", h.Panchayat.Add)
	adm.PUT("/adminUpdatePanchayat/:id", h.Panchayat.Update)
	adm.DELETE("/adminDeletePanchayat/:id", h.Panchayat.Delete)
	adm.GET("/adminFetchPanchayat/:id", h.Panchayat.Fetch)
	adm.POST("/adminAddOperator", h.Operator.Add)
	adm.PUT("/adminUpdateOperator/:id", h.Operator.Update)
	adm.DELETE("/adminDeleteOperator/:id", h.Operator.Delete)
	adm.GET("/adminFetchOperator/:id", h.Operator.Fetch)
	adm.POST("/adminAddVillager", h.Villager.Add)
	adm.PUT("/adminUpdateVillager/:house_no", h.Villager.Update)
	adm.DELETE("/adminDeleteVillager/:house_no", h.Villager.Delete)
	adm.GET("/adminFetchVillager/:house_no", h.Villager.Fetch)
	adm.GET("/adminSearch", h.Panchayat.Search)

	// Villager self-service.
	vil := e.Group("", jwt, middleware.RequireRole(auth.RoleVillager))
	vil.POST("/addFeedback", h.Villager.AddFeedback)
}
