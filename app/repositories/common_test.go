package repositories

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blog/app/database"
	"blog/app/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

// fixtures creates one user and one category.
func fixtures(t *testing.T, db *gorm.DB) (*models.User, *models.Category) {
	t.Helper()
	ctx := context.Background()
	user := &models.User{Username: "alice", Password: "$2a$10$hash"}
	require.NoError(t, NewGormUserRepository(db).Create(ctx, user))
	category, _, err := NewGormCategoryRepository(db).FirstOrCreate(ctx, "Fanfics")
	require.NoError(t, err)
	return user, category
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("wrapped: %w", gorm.ErrDuplicatedKey)), ErrDuplicate)
	assert.ErrorIs(t, translate(&pq.Error{Code: "23505"}), ErrDuplicate)
	assert.ErrorIs(t, translate(errors.New("UNIQUE constraint failed: users.username")), ErrDuplicate)

	other := errors.New("disk full")
	assert.Equal(t, other, translate(other))
}

func TestAuthorOrUnknown(t *testing.T) {
	assert.Equal(t, "bob", authorOrUnknown("bob"))
	assert.Equal(t, models.UnknownAuthor, authorOrUnknown(""))
}
