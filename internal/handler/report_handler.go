package handler

import (
	"net/http"

	"oliveleos/internal/config"
	"oliveleos/internal/middleware"
	"oliveleos/internal/repository"
	"oliveleos/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/reports のKPI集計API（管理者専用）
type ReportHandler struct {
	uc *usecase.ReportUsecase
}

// DI
func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin/reports")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/summary", h.summary)
	admin.GET("/by-pharmacy", h.byPharmacy)
	admin.GET("/by-product", h.byProduct)
	admin.GET("/by-commercial", h.byCommercial)
}

// ?from=&to= （RFC3339、省略可）
func periodFromQuery(c echo.Context) usecase.ReportPeriodInput {
	return usecase.ReportPeriodInput{
		From: c.QueryParam("from"),
		To:   c.QueryParam("to"),
	}
}

func (h *ReportHandler) summary(c echo.Context) error {
	out, err := h.uc.Summary(c.Request().Context(), periodFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) byPharmacy(c echo.Context) error {
	out, err := h.uc.ByPharmacy(c.Request().Context(), periodFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) byProduct(c echo.Context) error {
	out, err := h.uc.ByProduct(c.Request().Context(), periodFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) byCommercial(c echo.Context) error {
	out, err := h.uc.ByCommercial(c.Request().Context(), periodFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
