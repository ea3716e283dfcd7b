// Package pessoas provides relational-store operations for Pessoa records.
//
// # Usage
//
//	repo := pessoas.NewRepository(db)
//	pessoa, err := repo.GetByEmail(ctx, email)
package pessoas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/estantedigital/plataforma/internal/entities"
)

var (
	ErrNotFound          = errors.New("pessoa not found")
	ErrDuplicateEmail    = errors.New("email_institucional already registered")
	ErrDuplicateUsername = errors.New("username already taken")
)

// Repository handles all Pessoa database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new pessoas repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// classifyWriteError maps a driver-level insert failure to a duplicate
// sentinel when the unique constraint on username or email fired. MySQL
// reports error 1062, sqlite reports "UNIQUE constraint failed"; both
// name the offending column in the message.
func classifyWriteError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	duplicate := strings.Contains(msg, "error 1062") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "unique constraint")
	if !duplicate {
		return err
	}
	if strings.Contains(msg, "username") {
		return fmt.Errorf("%w: %v", ErrDuplicateUsername, err)
	}
	if strings.Contains(msg, "email") {
		return fmt.Errorf("%w: %v", ErrDuplicateEmail, err)
	}
	return fmt.Errorf("%w: %v", ErrDuplicateEmail, err)
}

// Create inserts a new Pessoa and fills its generated identifier.
func (r *Repository) Create(ctx context.Context, p *entities.Pessoa) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return classifyWriteError(err)
	}
	return nil
}

// GetByID retrieves a Pessoa by its generated identifier.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Pessoa, error) {
	var p entities.Pessoa
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByEmail retrieves a Pessoa by institutional email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*entities.Pessoa, error) {
	var p entities.Pessoa
	err := r.db.WithContext(ctx).Where("email_institucional = ?", email).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByIdentifier retrieves a Pessoa matching either the institutional
// email or the username.
func (r *Repository) GetByIdentifier(ctx context.Context, identifier string) (*entities.Pessoa, error) {
	var p entities.Pessoa
	err := r.db.WithContext(ctx).
		Where("email_institucional = ? OR username = ?", identifier, identifier).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListAll returns every Pessoa, oldest first. Used by the bulk sync path.
func (r *Repository) ListAll(ctx context.Context) ([]entities.Pessoa, error) {
	var pessoas []entities.Pessoa
	err := r.db.WithContext(ctx).Order("idPessoa").Find(&pessoas).Error
	return pessoas, err
}

// ListPage returns one page of Pessoa records, newest first, plus the
// total count.
func (r *Repository) ListPage(ctx context.Context, page, limit int) ([]entities.Pessoa, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Pessoa{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var pessoas []entities.Pessoa
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&pessoas).Error
	return pessoas, total, err
}

// UpdatePassword overwrites the stored password hash.
func (r *Repository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&entities.Pessoa{}).
		Where("idPessoa = ?", id).
		Updates(map[string]any{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a Pessoa row. Used by the rollback path.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entities.Pessoa{}, id).Error
}
