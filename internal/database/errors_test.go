package database

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(errors.New(`ERROR: duplicate key value violates unique constraint "idx_teams_name"`)))
	assert.True(t, IsDuplicateKey(errors.New("UNIQUE constraint failed: teams.name")))
	assert.False(t, IsDuplicateKey(errors.New("connection reset")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(errors.Wrap(gorm.ErrRecordNotFound, "find team")))
	assert.False(t, IsNotFound(errors.New("boom")))
}
