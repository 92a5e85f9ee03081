package repo

import (
	"context"
	"testing"
	"time"

	"github.com/mhd0331/JinanCampaign/internal/domain"
)

func TestImplementationUpdates_CreateAndList(t *testing.T) {
	db := newMigratedDB(t)
	ctx := context.Background()

	s := newSuggestion("경로당 보수")
	if err := CreateSuggestion(ctx, db, s); err != nil {
		t.Fatalf("CreateSuggestion: %v", err)
	}
	sid := s.ID

	first := &domain.ImplementationUpdate{SuggestionID: &sid, UpdateType: "progress", Title: "설계", Description: "설계 완료", ProgressPercentage: 30, IsPublic: true, CreatedBy: "admin"}
	policy := "pledge-1"
	other := &domain.ImplementationUpdate{PolicyID: &policy, UpdateType: "milestone", Title: "예산", Description: "확보", ProgressPercentage: 50, IsPublic: true, CreatedBy: "admin"}
	for _, u := range []*domain.ImplementationUpdate{first, other} {
		if err := CreateImplementationUpdate(ctx, db, u); err != nil {
			t.Fatalf("CreateImplementationUpdate: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	all, err := ListImplementationUpdates(ctx, db, "")
	if err != nil || len(all) != 2 || all[0].ID != other.ID {
		t.Fatalf("expected newest first, got %+v (%v)", all, err)
	}
	mine, _ := ListImplementationUpdates(ctx, db, sid)
	if len(mine) != 1 || mine[0].ID != first.ID {
		t.Fatalf("suggestion filter: %+v", mine)
	}
}

func TestImplementationUpdates_ProgressCheck(t *testing.T) {
	db := newMigratedDB(t)
	u := &domain.ImplementationUpdate{UpdateType: "progress", Title: "x", Description: "y", ProgressPercentage: 101, CreatedBy: "admin"}
	if err := CreateImplementationUpdate(context.Background(), db, u); err == nil {
		t.Fatalf("expected CHECK violation for progress 101")
	}
}
