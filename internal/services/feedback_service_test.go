package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mhd0331/JinanCampaign/internal/domain"
)

func TestFeedback_Create_Pending(t *testing.T) {
	svc := &FeedbackService{DB: newTestDB(t)}
	ctx := context.Background()

	f, err := svc.Create(ctx, FeedbackInput{Type: "policy", TargetID: strp("p1"), Rating: intp(5)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.ModerationStatus != domain.ModerationPending || !f.IsPublic {
		t.Fatalf("defaults not applied: %+v", f)
	}

	pub, err := svc.ListPublic(ctx, "", "")
	if err != nil || len(pub) != 0 {
		t.Fatalf("pending feedback must not be public: %d %v", len(pub), err)
	}
}

func TestFeedback_Create_Validation(t *testing.T) {
	svc := &FeedbackService{DB: newTestDB(t)}
	ctx := context.Background()

	cases := []FeedbackInput{
		{Type: "", Rating: intp(3)},
		{Type: "policy", Rating: intp(0)},
		{Type: "policy", Rating: intp(6)},
		{Type: "policy"},
		{Type: "policy", FeedbackText: strp("   ")},
	}
	for i, in := range cases {
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestFeedback_ModerationFlow(t *testing.T) {
	svc := &FeedbackService{DB: newTestDB(t)}
	ctx := context.Background()

	approved, _ := svc.Create(ctx, FeedbackInput{Type: "policy", TargetID: strp("p1"), FeedbackText: strp("좋아요")})
	private, _ := svc.Create(ctx, FeedbackInput{Type: "policy", TargetID: strp("p1"), FeedbackText: strp("비공개"), IsPublic: boolp(false)})
	rejected, _ := svc.Create(ctx, FeedbackInput{Type: "policy", TargetID: strp("p2"), Rating: intp(1)})

	for _, id := range []string{approved.ID, private.ID} {
		if _, err := svc.Moderate(ctx, id, ModerationInput{Status: domain.ModerationApproved}); err != nil {
			t.Fatalf("approve: %v", err)
		}
	}
	got, err := svc.Moderate(ctx, rejected.ID, ModerationInput{Status: domain.ModerationRejected, Notes: strp("spam")})
	if err != nil || got.ModeratorNotes == nil || *got.ModeratorNotes != "spam" {
		t.Fatalf("reject: %+v %v", got, err)
	}

	pub, err := svc.ListPublic(ctx, "policy", "")
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(pub) != 1 || pub[0].ID != approved.ID {
		t.Fatalf("only approved+public expected, got %+v", pub)
	}
	if byTarget, _ := svc.ListPublic(ctx, "", "p2"); len(byTarget) != 0 {
		t.Fatalf("rejected feedback leaked")
	}

	queue, err := svc.ModerationQueue(ctx, "approved")
	if err != nil || len(queue) != 2 {
		t.Fatalf("queue approved: %d %v", len(queue), err)
	}
	all, _ := svc.ModerationQueue(ctx, "")
	if len(all) != 3 {
		t.Fatalf("queue all: %d", len(all))
	}
	if _, err := svc.ModerationQueue(ctx, "maybe"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad status filter: %v", err)
	}

	if _, err := svc.Moderate(ctx, approved.ID, ModerationInput{Status: "maybe"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad moderation status: %v", err)
	}
	if _, err := svc.Moderate(ctx, "missing", ModerationInput{Status: domain.ModerationApproved}); !errors.Is(err, ErrFeedbackNotFound) {
		t.Fatalf("missing: %v", err)
	}
}

func TestFeedback_UpdateAndDelete(t *testing.T) {
	svc := &FeedbackService{DB: newTestDB(t)}
	ctx := context.Background()

	f, _ := svc.Create(ctx, FeedbackInput{Type: "site", Rating: intp(3)})
	got, err := svc.Update(ctx, f.ID, FeedbackPatch{Rating: intp(4), FeedbackText: strp("개선됨")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if *got.Rating != 4 || got.FeedbackText == nil || got.ModerationStatus != domain.ModerationPending {
		t.Fatalf("unexpected: %+v", got)
	}
	if _, err := svc.Update(ctx, f.ID, FeedbackPatch{Rating: intp(9)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad rating: %v", err)
	}

	if err := svc.Delete(ctx, f.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, f.ID); !errors.Is(err, ErrFeedbackNotFound) {
		t.Fatalf("second delete: %v", err)
	}
	if _, err := svc.Update(ctx, f.ID, FeedbackPatch{}); !errors.Is(err, ErrFeedbackNotFound) {
		t.Fatalf("update missing: %v", err)
	}
}
