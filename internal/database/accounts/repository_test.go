package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/estantedigital/plataforma/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Account{}))
	return NewRepository(db)
}

func TestRepository_CreateAndGetByPessoaID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	a := &entities.Account{IDPessoa: 7, Username: "ana", Location: "$2a$10$hash"}
	require.NoError(t, repo.Create(ctx, a))
	assert.NotZero(t, a.IDAccount)

	found, err := repo.GetByPessoaID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, a.IDAccount, found.IDAccount)

	_, err = repo.GetByPessoaID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	a := &entities.Account{IDPessoa: 7, Username: "ana"}
	require.NoError(t, repo.Create(ctx, a))

	require.NoError(t, repo.Delete(ctx, a.IDAccount))

	_, err := repo.GetByPessoaID(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}
