package handler

import (
	"net/http"
	"strconv"
	"time"

	"oliveleos/internal/config"
	"oliveleos/internal/middleware"
	"oliveleos/internal/repository"
	"oliveleos/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 薬局の作成・更新の入力。first_contact_dateはRFC3339。
type PharmacyUpsertRequest struct {
	Name                 string          `json:"name"`
	ContactName          string          `json:"contact_name"`
	Address              string          `json:"address"`
	PostalCode           string          `json:"postal_code"`
	City                 string          `json:"city"`
	Phone                string          `json:"phone"`
	Email                string          `json:"email"`
	Sector               string          `json:"sector"`
	Status               string          `json:"status"`
	AssignedCommercialID *int64          `json:"assigned_commercial_id"`
	FirstContactDate     string          `json:"first_contact_date"`
	DiscountRate         decimal.Decimal `json:"discount_rate"`
}

type AddNoteRequest struct {
	NoteText string `json:"note_text"`
}

// /pharmacies の顧客管理API
type PharmacyHandler struct {
	uc *usecase.PharmacyUsecase
}

// DI
func NewPharmacyHandler(uc *usecase.PharmacyUsecase) *PharmacyHandler {
	return &PharmacyHandler{uc: uc}
}

func (h *PharmacyHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/pharmacies")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.GET("/:id/notes", h.listNotes)
	g.POST("/:id/notes", h.addNote)
}

func (h *PharmacyHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.List(c.Request().Context(), userID, getRoleFromContext(c), usecase.ListPharmaciesInput{
		Page:   page,
		Limit:  limit,
		Q:      c.QueryParam("q"),
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *PharmacyHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	ph, err := h.uc.GetDetail(c.Request().Context(), userID, getRoleFromContext(c), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ph)
}

func toPharmacyInput(req PharmacyUpsertRequest) (usecase.PharmacyInput, error) {
	in := usecase.PharmacyInput{
		Name:                 req.Name,
		ContactName:          req.ContactName,
		Address:              req.Address,
		PostalCode:           req.PostalCode,
		City:                 req.City,
		Phone:                req.Phone,
		Email:                req.Email,
		Sector:               req.Sector,
		Status:               req.Status,
		AssignedCommercialID: req.AssignedCommercialID,
		DiscountRate:         req.DiscountRate,
	}
	if req.FirstContactDate != "" {
		t, err := time.Parse(time.RFC3339, req.FirstContactDate)
		if err != nil {
			return usecase.PharmacyInput{}, err
		}
		in.FirstContactDate = &t
	}
	return in, nil
}

func (h *PharmacyHandler) create(c echo.Context) error {
	var req PharmacyUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	in, err := toPharmacyInput(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid first_contact_date"})
	}

	ph, err := h.uc.Create(c.Request().Context(), userID, getRoleFromContext(c), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, ph)
}

func (h *PharmacyHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req PharmacyUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	in, err := toPharmacyInput(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid first_contact_date"})
	}

	ph, err := h.uc.Update(c.Request().Context(), userID, getRoleFromContext(c), id, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ph)
}

func (h *PharmacyHandler) listNotes(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	notes, err := h.uc.ListNotes(c.Request().Context(), userID, getRoleFromContext(c), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, notes)
}

func (h *PharmacyHandler) addNote(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AddNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	note, err := h.uc.AddNote(c.Request().Context(), userID, getRoleFromContext(c), id, usecase.AddNoteInput{
		NoteText: req.NoteText,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, note)
}
