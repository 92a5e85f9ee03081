package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIdempotency_UniqueScopeKey(t *testing.T) {
	db := newDomainDB(t)
	now := time.Now().UTC()

	rec := &Idempotency{ID: uuid.NewString(), Scope: "support:s1", Key: "k1", ResourceID: uuid.NewString(), CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("insert valid: %v", err)
	}

	var got Idempotency
	if err := db.First(&got, "id = ?", rec.ID).Error; err != nil {
		t.Fatalf("readback: %v", err)
	}
	if got.Scope != "support:s1" || got.Key != "k1" || got.ResourceID != rec.ResourceID {
		t.Fatalf("unexpected row: %+v", got)
	}

	dup := &Idempotency{ID: uuid.NewString(), Scope: "support:s1", Key: "k1", ResourceID: uuid.NewString(), CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected UNIQUE violation on (scope, key)")
	}

	other := &Idempotency{ID: uuid.NewString(), Scope: "chat:abc", Key: "k1", ResourceID: uuid.NewString(), CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("same key in another scope should be allowed: %v", err)
	}
}
