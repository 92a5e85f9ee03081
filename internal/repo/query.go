package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

// likeEscaper escapes LIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased "%q%" LIKE pattern for substring search.
// It is paired with `LOWER(col) LIKE ? ESCAPE '\'`, which behaves the same on
// PostgreSQL and SQLite.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(q))) + "%"
}

// containsClause returns the WHERE fragment for a substring match on col.
func containsClause(col string) string {
	return "LOWER(" + col + `) LIKE ? ESCAPE '\'`
}

// updateByID applies updates to the row with the given id. updated_at is
// stamped for models that carry it (touch=true). It returns ErrNotFound when no
// row matched.
func updateByID(ctx context.Context, db *gorm.DB, model any, id string, updates map[string]any, touch bool) error {
	if touch {
		updates["updated_at"] = time.Now().UTC()
	}
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// deleteByID hard-deletes the row with the given id, returning ErrNotFound
// when nothing was removed.
func deleteByID(ctx context.Context, db *gorm.DB, model any, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
