package curriculum

import (
	"errors"
	"net/http"
	"testing"

	"github.com/yungbote/matpath-backend/internal/platform/apierr"
)

func TestNormalizeID_Slugifies(t *testing.T) {
	got, err := NormalizeID("  Knee Cut Pass! ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "knee-cut-pass" {
		t.Fatalf("expected knee-cut-pass, got %q", got)
	}
}

func TestNormalizeID_CollapsesNonAlnumRuns(t *testing.T) {
	got, err := NormalizeID("half__--guard///bottom")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "half-guard-bottom" {
		t.Fatalf("expected half-guard-bottom, got %q", got)
	}
}

func TestNormalizeID_EmptyResultFails(t *testing.T) {
	_, err := NormalizeID("!!! --- !!!")
	if err == nil {
		t.Fatalf("expected error for identifier that normalizes to empty")
	}
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected apierr.Error, got %T", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", apiErr.Status)
	}
}

func TestNormalizeList_DedupesCaseInsensitiveKeepingFirst(t *testing.T) {
	got := NormalizeList([]string{" Frames ", "frames", "Hip Escape", "", "HIP ESCAPE"})
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %v", got)
	}
	if got[0] != "Frames" || got[1] != "Hip Escape" {
		t.Fatalf("expected first-occurrence order, got %v", got)
	}
}

func TestNormalizeIDList_DropsEmptyAndDupes(t *testing.T) {
	got := NormalizeIDList([]string{"Knee Cut", "knee-cut", "???", "Mount Escape"})
	if len(got) != 2 {
		t.Fatalf("expected 2 ids, got %v", got)
	}
	if got[0] != "knee-cut" || got[1] != "mount-escape" {
		t.Fatalf("unexpected ids: %v", got)
	}
}
