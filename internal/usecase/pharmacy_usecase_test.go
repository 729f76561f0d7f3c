package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"oliveleos/internal/domain/model"
	repo "oliveleos/internal/repository"
	"oliveleos/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type PharmRepoMock struct{ mock.Mock }

func (m *PharmRepoMock) List(ctx context.Context, q repo.PharmacyListQuery) ([]model.Pharmacy, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Pharmacy)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *PharmRepoMock) FindByID(ctx context.Context, pharmacyID int64) (model.Pharmacy, error) {
	args := m.Called(ctx, pharmacyID)
	ph, _ := args.Get(0).(model.Pharmacy)
	return ph, args.Error(1)
}

func (m *PharmRepoMock) Create(ctx context.Context, ph model.Pharmacy) (model.Pharmacy, error) {
	args := m.Called(ctx, ph)
	created, _ := args.Get(0).(model.Pharmacy)
	return created, args.Error(1)
}

func (m *PharmRepoMock) Update(ctx context.Context, ph model.Pharmacy) error {
	args := m.Called(ctx, ph)
	return args.Error(0)
}

type PharmNoteRepoMock struct{ mock.Mock }

func (m *PharmNoteRepoMock) Create(ctx context.Context, note model.PharmacyNote) (model.PharmacyNote, error) {
	args := m.Called(ctx, note)
	created, _ := args.Get(0).(model.PharmacyNote)
	return created, args.Error(1)
}

func (m *PharmNoteRepoMock) ListByPharmacyID(ctx context.Context, pharmacyID int64) ([]model.PharmacyNote, error) {
	args := m.Called(ctx, pharmacyID)
	notes, _ := args.Get(0).([]model.PharmacyNote)
	return notes, args.Error(1)
}

type PharmAuditRepoMock struct{ mock.Mock }

func (m *PharmAuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *PharmAuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	panic("not used in PharmacyUsecase tests")
}

func validPharmacyInput() usecase.PharmacyInput {
	return usecase.PharmacyInput{
		Name:         "Pharmacie du Port",
		Address:      "12 quai des Oliviers",
		PostalCode:   "13002",
		City:         "Marseille",
		Sector:       "PACA",
		Status:       "ACTIVE",
		DiscountRate: dec("30"),
	}
}

// =====================
// List / Detail
// =====================

func TestPharmacyUsecase_List_CommercialSeesOnlyOwnPharmacies(t *testing.T) {
	phRepo := new(PharmRepoMock)
	uc := usecase.NewPharmacyUsecase(phRepo, new(PharmNoteRepoMock), new(PharmAuditRepoMock))

	userID := int64(1)
	phRepo.On("List", mock.Anything, mock.MatchedBy(func(q repo.PharmacyListQuery) bool {
		return q.AssignedCommercialID != nil && *q.AssignedCommercialID == userID
	})).Return([]model.Pharmacy{}, int64(0), nil)

	_, err := uc.List(context.Background(), userID, model.RoleCommercial, usecase.ListPharmaciesInput{Page: 1, Limit: 20})
	assert.NoError(t, err)
	phRepo.AssertExpectations(t)
}

func TestPharmacyUsecase_List_AdminSeesAll(t *testing.T) {
	phRepo := new(PharmRepoMock)
	uc := usecase.NewPharmacyUsecase(phRepo, new(PharmNoteRepoMock), new(PharmAuditRepoMock))

	phRepo.On("List", mock.Anything, mock.MatchedBy(func(q repo.PharmacyListQuery) bool {
		return q.AssignedCommercialID == nil
	})).Return([]model.Pharmacy{}, int64(0), nil)

	_, err := uc.List(context.Background(), 99, model.RoleAdmin, usecase.ListPharmaciesInput{Page: 1, Limit: 20})
	assert.NoError(t, err)
	phRepo.AssertExpectations(t)
}

func TestPharmacyUsecase_GetDetail_UnassignedHidden(t *testing.T) {
	phRepo := new(PharmRepoMock)
	uc := usecase.NewPharmacyUsecase(phRepo, new(PharmNoteRepoMock), new(PharmAuditRepoMock))

	other := int64(2)
	phRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Pharmacy{ID: 10, AssignedCommercialID: &other}, nil)

	//担当外は404（存在しない扱い）
	_, err := uc.GetDetail(context.Background(), 1, model.RoleCommercial, 10)
	assertErrStatus(t, err, http.StatusNotFound)
}

// =====================
// Create / Update
// =====================

func TestPharmacyUsecase_Create_CommercialAutoAssignsSelf(t *testing.T) {
	phRepo := new(PharmRepoMock)
	uc := usecase.NewPharmacyUsecase(phRepo, new(PharmNoteRepoMock), new(PharmAuditRepoMock))

	userID := int64(1)
	phRepo.On("Create", mock.Anything, mock.MatchedBy(func(ph model.Pharmacy) bool {
		return ph.AssignedCommercialID != nil && *ph.AssignedCommercialID == userID
	})).Return(model.Pharmacy{ID: 10}, nil)

	_, err := uc.Create(context.Background(), userID, model.RoleCommercial, validPharmacyInput())
	assert.NoError(t, err)
	phRepo.AssertExpectations(t)
}

func TestPharmacyUsecase_Create_DiscountRateOver100Rejected(t *testing.T) {
	uc := usecase.NewPharmacyUsecase(new(PharmRepoMock), new(PharmNoteRepoMock), new(PharmAuditRepoMock))

	in := validPharmacyInput()
	in.DiscountRate = dec("101")
	_, err := uc.Create(context.Background(), 1, model.RoleCommercial, in)
	assertErrContains(t, err, "discount_rate")
}

func TestPharmacyUsecase_Update_DiscountChangeAudited(t *testing.T) {
	phRepo := new(PharmRepoMock)
	auditRepo := new(PharmAuditRepoMock)
	uc := usecase.NewPharmacyUsecase(phRepo, new(PharmNoteRepoMock), auditRepo)

	userID := int64(1)
	current := assignedPharmacy(userID)
	current.DiscountRate = dec("30")

	phRepo.On("FindByID", mock.Anything, int64(10)).Return(current, nil)
	phRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateDiscountRate &&
			l.ResourceType == model.AuditResourcePharmacy &&
			l.BeforeJSON == `{"discount_rate":"30.00"}` &&
			l.AfterJSON == `{"discount_rate":"35.00"}`
	})).Return(nil)

	in := validPharmacyInput()
	in.DiscountRate = dec("35")
	_, err := uc.Update(context.Background(), userID, model.RoleCommercial, 10, in)
	assert.NoError(t, err)
	auditRepo.AssertExpectations(t)
}

func TestPharmacyUsecase_Update_SameDiscountNoAudit(t *testing.T) {
	phRepo := new(PharmRepoMock)
	auditRepo := new(PharmAuditRepoMock)
	uc := usecase.NewPharmacyUsecase(phRepo, new(PharmNoteRepoMock), auditRepo)

	userID := int64(1)
	phRepo.On("FindByID", mock.Anything, int64(10)).Return(assignedPharmacy(userID), nil)
	phRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Update(context.Background(), userID, model.RoleCommercial, 10, validPharmacyInput())
	assert.NoError(t, err)
	auditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPharmacyUsecase_Update_CommercialCannotReassign(t *testing.T) {
	phRepo := new(PharmRepoMock)
	uc := usecase.NewPharmacyUsecase(phRepo, new(PharmNoteRepoMock), new(PharmAuditRepoMock))

	userID := int64(1)
	phRepo.On("FindByID", mock.Anything, int64(10)).Return(assignedPharmacy(userID), nil)

	//担当の付け替えは無視され、現状のまま保存される
	phRepo.On("Update", mock.Anything, mock.MatchedBy(func(ph model.Pharmacy) bool {
		return ph.AssignedCommercialID != nil && *ph.AssignedCommercialID == userID
	})).Return(nil)

	other := int64(7)
	in := validPharmacyInput()
	in.AssignedCommercialID = &other

	_, err := uc.Update(context.Background(), userID, model.RoleCommercial, 10, in)
	assert.NoError(t, err)
	phRepo.AssertExpectations(t)
}

// =====================
// Notes
// =====================

func TestPharmacyUsecase_AddNote_EmptyTextRejected(t *testing.T) {
	uc := usecase.NewPharmacyUsecase(new(PharmRepoMock), new(PharmNoteRepoMock), new(PharmAuditRepoMock))

	_, err := uc.AddNote(context.Background(), 1, model.RoleCommercial, 10, usecase.AddNoteInput{NoteText: "   "})
	assertErrContains(t, err, "note_text required")
}

func TestPharmacyUsecase_AddNote_Success(t *testing.T) {
	phRepo := new(PharmRepoMock)
	noteRepo := new(PharmNoteRepoMock)
	uc := usecase.NewPharmacyUsecase(phRepo, noteRepo, new(PharmAuditRepoMock))

	userID := int64(1)
	phRepo.On("FindByID", mock.Anything, int64(10)).Return(assignedPharmacy(userID), nil)
	noteRepo.On("Create", mock.Anything, mock.MatchedBy(func(n model.PharmacyNote) bool {
		return n.PharmacyID == 10 && n.UserID == userID && n.NoteText == "Visite du 2 mars, intéressée par la gamme savon"
	})).Return(model.PharmacyNote{ID: 1}, nil)

	_, err := uc.AddNote(context.Background(), userID, model.RoleCommercial, 10, usecase.AddNoteInput{
		NoteText: "Visite du 2 mars, intéressée par la gamme savon",
	})
	assert.NoError(t, err)
	noteRepo.AssertExpectations(t)
}
