package handler

import (
	"net/http"
	"strconv"

	"oliveleos/internal/config"
	"oliveleos/internal/middleware"
	"oliveleos/internal/repository"
	"oliveleos/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/users のユーザー管理API
type AdminUserHandler struct {
	authUC   *usecase.AuthUsecase
	userRepo repository.UserRepository
}

// DI
func NewAdminUserHandler(authUC *usecase.AuthUsecase, userRepo repository.UserRepository) *AdminUserHandler {
	return &AdminUserHandler{authUC: authUC, userRepo: userRepo}
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/users", h.list)
	admin.POST("/users/:id/force-logout", h.forceLogout)
}

// コメルシアルの一覧。password_hashは返さない。
func (h *AdminUserHandler) list(c echo.Context) error {
	users, err := h.userRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	dtos := make([]usecase.UserDTO, 0, len(users))
	for i := range users {
		u := users[i]
		dtos = append(dtos, usecase.UserDTO{
			ID:           u.ID,
			Email:        u.Email,
			FullName:     u.FullName,
			Role:         string(u.Role),
			Sector:       u.Sector,
			TokenVersion: u.TokenVersion,
			IsActive:     u.IsActive,
		})
	}

	return c.JSON(http.StatusOK, dtos)
}

// token_versionを上げて全端末を強制ログアウトさせる。
func (h *AdminUserHandler) forceLogout(c echo.Context) error {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.authUC.ForceLogout(c.Request().Context(), targetID)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
