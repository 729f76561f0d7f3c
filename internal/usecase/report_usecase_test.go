package usecase_test

import (
	"context"
	"testing"
	"time"

	repo "oliveleos/internal/repository"
	"oliveleos/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ReportRepoMock struct{ mock.Mock }

func (m *ReportRepoMock) Summary(ctx context.Context, p repo.ReportPeriod) (repo.ReportSummary, error) {
	args := m.Called(ctx, p)
	s, _ := args.Get(0).(repo.ReportSummary)
	return s, args.Error(1)
}

func (m *ReportRepoMock) ByPharmacy(ctx context.Context, p repo.ReportPeriod) ([]repo.PharmacyKPIRow, error) {
	args := m.Called(ctx, p)
	rows, _ := args.Get(0).([]repo.PharmacyKPIRow)
	return rows, args.Error(1)
}

func (m *ReportRepoMock) ByProduct(ctx context.Context, p repo.ReportPeriod) ([]repo.ProductKPIRow, error) {
	args := m.Called(ctx, p)
	rows, _ := args.Get(0).([]repo.ProductKPIRow)
	return rows, args.Error(1)
}

func (m *ReportRepoMock) ByCommercial(ctx context.Context, p repo.ReportPeriod) ([]repo.CommercialKPIRow, error) {
	args := m.Called(ctx, p)
	rows, _ := args.Get(0).([]repo.CommercialKPIRow)
	return rows, args.Error(1)
}

func TestReportUsecase_Summary_InvalidFrom(t *testing.T) {
	uc := usecase.NewReportUsecase(new(ReportRepoMock))

	_, err := uc.Summary(context.Background(), usecase.ReportPeriodInput{From: "2026/01/01"})
	assertErrContains(t, err, "invalid from")
}

func TestReportUsecase_Summary_FromAfterTo(t *testing.T) {
	uc := usecase.NewReportUsecase(new(ReportRepoMock))

	_, err := uc.Summary(context.Background(), usecase.ReportPeriodInput{
		From: "2026-03-01T00:00:00Z",
		To:   "2026-01-01T00:00:00Z",
	})
	assertErrContains(t, err, "from must be before to")
}

func TestReportUsecase_Summary_ParsesPeriod(t *testing.T) {
	rRepo := new(ReportRepoMock)
	uc := usecase.NewReportUsecase(rRepo)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rRepo.On("Summary", mock.Anything, mock.MatchedBy(func(p repo.ReportPeriod) bool {
		return p.From != nil && p.From.Equal(from) && p.To == nil
	})).Return(repo.ReportSummary{TotalOrders: 4}, nil)

	s, err := uc.Summary(context.Background(), usecase.ReportPeriodInput{From: "2026-01-01T00:00:00Z"})
	assert.NoError(t, err)
	assert.Equal(t, int64(4), s.TotalOrders)
}

func TestReportUsecase_ByPharmacy_EmptyPeriodAllowed(t *testing.T) {
	rRepo := new(ReportRepoMock)
	uc := usecase.NewReportUsecase(rRepo)

	rRepo.On("ByPharmacy", mock.Anything, repo.ReportPeriod{}).Return([]repo.PharmacyKPIRow{}, nil)

	rows, err := uc.ByPharmacy(context.Background(), usecase.ReportPeriodInput{})
	assert.NoError(t, err)
	assert.Empty(t, rows)
}
