package usecase_test

import (
	"strings"
	"testing"

	"oliveleos/internal/usecase"
)

// HTTPErrorのメッセージに部分一致するかだけ見る。
func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error containing %q, got nil", wantSubstr)
	}

	he, ok := usecase.AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %T: %v", err, err)
	}
	if !strings.Contains(he.Message, wantSubstr) {
		t.Fatalf("expected error containing %q, got %q", wantSubstr, he.Message)
	}
}

func assertErrStatus(t *testing.T, err error, wantStatus int) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with status %d, got nil", wantStatus)
	}

	he, ok := usecase.AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %T: %v", err, err)
	}
	if he.Status != wantStatus {
		t.Fatalf("expected status %d, got %d (%s)", wantStatus, he.Status, he.Message)
	}
}
