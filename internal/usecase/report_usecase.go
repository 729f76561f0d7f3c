package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	repo "oliveleos/internal/repository"
)

// ReportUsecase はKPI集計（管理者専用。handler側のAdminRoleGuardで守る）。
// 売上系の数字はCANCELLEDを除いて集計する。
type ReportUsecase struct {
	reportRepo repo.ReportRepository
}

func NewReportUsecase(reportRepo repo.ReportRepository) *ReportUsecase {
	return &ReportUsecase{reportRepo: reportRepo}
}

type ReportPeriodInput struct {
	From string //RFC3339。空なら期間下限なし
	To   string //RFC3339。空なら期間上限なし
}

func (in ReportPeriodInput) toPeriod() (repo.ReportPeriod, error) {
	var p repo.ReportPeriod

	if strings.TrimSpace(in.From) != "" {
		t, err := time.Parse(time.RFC3339, in.From)
		if err != nil {
			return repo.ReportPeriod{}, NewHTTPError(http.StatusBadRequest, "invalid from")
		}
		p.From = &t
	}
	if strings.TrimSpace(in.To) != "" {
		t, err := time.Parse(time.RFC3339, in.To)
		if err != nil {
			return repo.ReportPeriod{}, NewHTTPError(http.StatusBadRequest, "invalid to")
		}
		p.To = &t
	}
	if p.From != nil && p.To != nil && p.From.After(*p.To) {
		return repo.ReportPeriod{}, NewHTTPError(http.StatusBadRequest, "from must be before to")
	}
	return p, nil
}

func (u *ReportUsecase) Summary(ctx context.Context, in ReportPeriodInput) (repo.ReportSummary, error) {
	p, err := in.toPeriod()
	if err != nil {
		return repo.ReportSummary{}, err
	}

	s, err := u.reportRepo.Summary(ctx, p)
	if err != nil {
		return repo.ReportSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

func (u *ReportUsecase) ByPharmacy(ctx context.Context, in ReportPeriodInput) ([]repo.PharmacyKPIRow, error) {
	p, err := in.toPeriod()
	if err != nil {
		return nil, err
	}

	rows, err := u.reportRepo.ByPharmacy(ctx, p)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

func (u *ReportUsecase) ByProduct(ctx context.Context, in ReportPeriodInput) ([]repo.ProductKPIRow, error) {
	p, err := in.toPeriod()
	if err != nil {
		return nil, err
	}

	rows, err := u.reportRepo.ByProduct(ctx, p)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

func (u *ReportUsecase) ByCommercial(ctx context.Context, in ReportPeriodInput) ([]repo.CommercialKPIRow, error) {
	p, err := in.toPeriod()
	if err != nil {
		return nil, err
	}

	rows, err := u.reportRepo.ByCommercial(ctx, p)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}
