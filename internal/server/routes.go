package server

import (
	"net/http"

	"oliveleos/internal/config"
	"oliveleos/internal/repository"

	"github.com/labstack/echo/v4"
)

// 各handlerが満たす登録インターフェース。
type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository)
}

// RegisterRoutes は全handlerのルートとヘルスチェックを登録する。
func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, registrars ...RouteRegistrar) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for _, r := range registrars {
		r.RegisterRoutes(e, cfg, userRepo)
	}
}
