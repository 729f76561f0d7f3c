package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"oliveleos/internal/domain/model"
	repo "oliveleos/internal/repository"

	"github.com/shopspring/decimal"
)

type PharmacyUsecase struct {
	pharmacyRepo repo.PharmacyRepository
	noteRepo     repo.PharmacyNoteRepository
	auditRepo    repo.AuditLogRepository
}

func NewPharmacyUsecase(
	pharmacyRepo repo.PharmacyRepository,
	noteRepo repo.PharmacyNoteRepository,
	auditRepo repo.AuditLogRepository,
) *PharmacyUsecase {
	return &PharmacyUsecase{
		pharmacyRepo: pharmacyRepo,
		noteRepo:     noteRepo,
		auditRepo:    auditRepo,
	}
}

type ListPharmaciesInput struct {
	Page   int
	Limit  int
	Q      string
	Status string
}

type PharmacyListOutput struct {
	Items []model.Pharmacy `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// 一覧。コメルシアルは担当薬局のみ、adminは全件。
func (u *PharmacyUsecase) List(ctx context.Context, userID int64, role model.Role, in ListPharmaciesInput) (PharmacyListOutput, error) {
	if userID <= 0 {
		return PharmacyListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Page < 1 {
		return PharmacyListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return PharmacyListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.Status != "" {
		switch model.PharmacyStatus(in.Status) {
		case model.PharmacyStatusActive, model.PharmacyStatusInactive, model.PharmacyStatusProspect:
		default:
			return PharmacyListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
	}

	q := repo.PharmacyListQuery{
		Page:   in.Page,
		Limit:  in.Limit,
		Q:      strings.TrimSpace(in.Q),
		Status: in.Status,
	}
	if role != model.RoleAdmin {
		q.AssignedCommercialID = &userID
	}

	items, total, err := u.pharmacyRepo.List(ctx, q)
	if err != nil {
		return PharmacyListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return PharmacyListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

// 詳細。担当外のコメルシアルには「存在しない扱い」。
func (u *PharmacyUsecase) GetDetail(ctx context.Context, userID int64, role model.Role, pharmacyID int64) (model.Pharmacy, error) {
	if userID <= 0 {
		return model.Pharmacy{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if pharmacyID <= 0 {
		return model.Pharmacy{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ph, err := u.pharmacyRepo.FindByID(ctx, pharmacyID)
	if err == repo.ErrNotFound {
		return model.Pharmacy{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Pharmacy{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !canAccessPharmacy(userID, role, ph) {
		return model.Pharmacy{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return ph, nil
}

type PharmacyInput struct {
	Name                 string
	ContactName          string
	Address              string
	PostalCode           string
	City                 string
	Phone                string
	Email                string
	Sector               string
	Status               string
	AssignedCommercialID *int64
	FirstContactDate     *time.Time
	DiscountRate         decimal.Decimal
}

func (in PharmacyInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return NewHTTPError(http.StatusBadRequest, "address required")
	}
	if strings.TrimSpace(in.City) == "" {
		return NewHTTPError(http.StatusBadRequest, "city required")
	}
	switch model.PharmacyStatus(in.Status) {
	case model.PharmacyStatusActive, model.PharmacyStatusInactive, model.PharmacyStatusProspect:
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	//割引率は0〜100%
	if in.DiscountRate.IsNegative() || in.DiscountRate.GreaterThan(decimal.NewFromInt(100)) {
		return NewHTTPError(http.StatusBadRequest, "discount_rate must be between 0 and 100")
	}
	return nil
}

// 作成。コメルシアルが作った薬局は自動的に自分の担当になる。
func (u *PharmacyUsecase) Create(ctx context.Context, userID int64, role model.Role, in PharmacyInput) (model.Pharmacy, error) {
	if userID <= 0 {
		return model.Pharmacy{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.validate(); err != nil {
		return model.Pharmacy{}, err
	}

	assigned := in.AssignedCommercialID
	if role != model.RoleAdmin {
		assigned = &userID
	}

	now := time.Now()
	ph, err := u.pharmacyRepo.Create(ctx, model.Pharmacy{
		Name:                 strings.TrimSpace(in.Name),
		ContactName:          strings.TrimSpace(in.ContactName),
		Address:              strings.TrimSpace(in.Address),
		PostalCode:           strings.TrimSpace(in.PostalCode),
		City:                 strings.TrimSpace(in.City),
		Phone:                strings.TrimSpace(in.Phone),
		Email:                strings.TrimSpace(in.Email),
		Sector:               strings.TrimSpace(in.Sector),
		Status:               model.PharmacyStatus(in.Status),
		AssignedCommercialID: assigned,
		FirstContactDate:     in.FirstContactDate,
		DiscountRate:         in.DiscountRate,
		CreatedAt:            now,
		UpdatedAt:            now,
	})
	if err != nil {
		return model.Pharmacy{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ph, nil
}

// 更新。割引率の変更は監査ログに残す（過去の注文には影響しない）。
// 担当の付け替えはadminのみ。
func (u *PharmacyUsecase) Update(ctx context.Context, userID int64, role model.Role, pharmacyID int64, in PharmacyInput) (model.Pharmacy, error) {
	if userID <= 0 {
		return model.Pharmacy{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if pharmacyID <= 0 {
		return model.Pharmacy{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return model.Pharmacy{}, err
	}

	current, err := u.pharmacyRepo.FindByID(ctx, pharmacyID)
	if err == repo.ErrNotFound {
		return model.Pharmacy{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Pharmacy{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !canAccessPharmacy(userID, role, current) {
		return model.Pharmacy{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	assigned := in.AssignedCommercialID
	if role != model.RoleAdmin {
		//コメルシアルは担当を変えられない
		assigned = current.AssignedCommercialID
	}

	updated := model.Pharmacy{
		ID:                   pharmacyID,
		Name:                 strings.TrimSpace(in.Name),
		ContactName:          strings.TrimSpace(in.ContactName),
		Address:              strings.TrimSpace(in.Address),
		PostalCode:           strings.TrimSpace(in.PostalCode),
		City:                 strings.TrimSpace(in.City),
		Phone:                strings.TrimSpace(in.Phone),
		Email:                strings.TrimSpace(in.Email),
		Sector:               strings.TrimSpace(in.Sector),
		Status:               model.PharmacyStatus(in.Status),
		AssignedCommercialID: assigned,
		FirstContactDate:     in.FirstContactDate,
		DiscountRate:         in.DiscountRate,
		UpdatedAt:            time.Now(),
	}

	if err := u.pharmacyRepo.Update(ctx, updated); err != nil {
		if err == repo.ErrNotFound {
			return model.Pharmacy{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Pharmacy{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//割引率が変わったら監査ログ
	if !current.DiscountRate.Equal(in.DiscountRate) {
		beforeJSON := `{"discount_rate":"` + current.DiscountRate.StringFixed(2) + `"}`
		afterJSON := `{"discount_rate":"` + in.DiscountRate.StringFixed(2) + `"}`
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  userID,
			Action:       model.AuditActionUpdateDiscountRate,
			ResourceType: model.AuditResourcePharmacy,
			ResourceID:   pharmacyID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return model.Pharmacy{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	ph, err := u.pharmacyRepo.FindByID(ctx, pharmacyID)
	if err != nil {
		return model.Pharmacy{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ph, nil
}

type AddNoteInput struct {
	NoteText string
}

// 訪問メモの追加。
func (u *PharmacyUsecase) AddNote(ctx context.Context, userID int64, role model.Role, pharmacyID int64, in AddNoteInput) (model.PharmacyNote, error) {
	if userID <= 0 {
		return model.PharmacyNote{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.NoteText) == "" {
		return model.PharmacyNote{}, NewHTTPError(http.StatusBadRequest, "note_text required")
	}

	ph, err := u.pharmacyRepo.FindByID(ctx, pharmacyID)
	if err == repo.ErrNotFound {
		return model.PharmacyNote{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.PharmacyNote{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !canAccessPharmacy(userID, role, ph) {
		return model.PharmacyNote{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	note, err := u.noteRepo.Create(ctx, model.PharmacyNote{
		PharmacyID: pharmacyID,
		UserID:     userID,
		NoteText:   strings.TrimSpace(in.NoteText),
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return model.PharmacyNote{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return note, nil
}

// 訪問メモの一覧（新しい順）。
func (u *PharmacyUsecase) ListNotes(ctx context.Context, userID int64, role model.Role, pharmacyID int64) ([]model.PharmacyNote, error) {
	if userID <= 0 {
		return []model.PharmacyNote{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	ph, err := u.pharmacyRepo.FindByID(ctx, pharmacyID)
	if err == repo.ErrNotFound {
		return []model.PharmacyNote{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return []model.PharmacyNote{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !canAccessPharmacy(userID, role, ph) {
		return []model.PharmacyNote{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	notes, err := u.noteRepo.ListByPharmacyID(ctx, pharmacyID)
	if err != nil {
		return []model.PharmacyNote{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return notes, nil
}
