// Package accounts provides relational-store operations for the auxiliary
// Account records linked to a Pessoa.
package accounts

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/estantedigital/plataforma/internal/entities"
)

var ErrNotFound = errors.New("account not found")

// Repository handles all Account database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new accounts repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new Account and fills its generated identifier.
func (r *Repository) Create(ctx context.Context, a *entities.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// GetByPessoaID retrieves the Account linked to a Pessoa, if any.
func (r *Repository) GetByPessoaID(ctx context.Context, pessoaID uint) (*entities.Account, error) {
	var a entities.Account
	err := r.db.WithContext(ctx).Where("idPessoa_Pessoa = ?", pessoaID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Delete removes an Account row. Used by the rollback path.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Account{}, id).Error
}
