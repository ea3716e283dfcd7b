// Package auth implements the authentication surface: signup (delegating
// to the synchronizer), signin with bearer tokens, and password recovery
// through the documento oficial credential.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/estantedigital/plataforma/internal/config"
	"github.com/estantedigital/plataforma/internal/documents"
	"github.com/estantedigital/plataforma/internal/entities"
	"github.com/estantedigital/plataforma/internal/sync"
)

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidDocument = errors.New("documento oficial does not match")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidTipo     = errors.New("invalid tipo")
)

// PessoaStore is the relational access the auth surface needs.
type PessoaStore interface {
	GetByIdentifier(ctx context.Context, identifier string) (*entities.Pessoa, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// UserTracker touches the document-store User on signin.
type UserTracker interface {
	FindByEmail(ctx context.Context, email string) (*documents.User, error)
	UpdateLastLogin(ctx context.Context, email string, at time.Time) error
}

// IdentityCreator is the synchronizer's creation path.
type IdentityCreator interface {
	InsertWithProfile(ctx context.Context, pessoa *entities.Pessoa) (*sync.Triple, error)
}

// SignUpInput carries the signup request fields. DocumentoOficial seeds
// both the initial password and the recovery credential.
type SignUpInput struct {
	NomeReferencial    string        `json:"nomeReferencial"`
	Username           string        `json:"username"`
	EmailInstitucional string        `json:"emailInstitucional"`
	DocumentoOficial   string        `json:"documentoOficial"`
	Role               entities.Role `json:"role"`
	Tipo               entities.Tipo `json:"tipo"`
}

// SignInResult is the signin response payload.
type SignInResult struct {
	Pessoa *entities.Pessoa
	Token  string
}

// Service handles signup, signin and password recovery.
type Service struct {
	creator IdentityCreator
	pessoas PessoaStore
	users   UserTracker
	cfg     config.Auth
}

// NewService creates a new authentication service.
func NewService(creator IdentityCreator, pessoas PessoaStore, users UserTracker, cfg config.Auth) *Service {
	return &Service{
		creator: creator,
		pessoas: pessoas,
		users:   users,
		cfg:     cfg,
	}
}

// SignUp hashes the documento oficial and hands the assembled Pessoa to
// the synchronizer, producing the full cross-store triple.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*sync.Triple, error) {
	if in.NomeReferencial == "" || in.Username == "" || in.EmailInstitucional == "" || in.DocumentoOficial == "" {
		return nil, ErrMissingFields
	}
	if in.Role != "" && !entities.ValidRole(in.Role) {
		return nil, ErrInvalidRole
	}
	if in.Tipo != "" && !entities.ValidTipo(in.Tipo) {
		return nil, ErrInvalidTipo
	}

	documentoHash, err := HashPassword(in.DocumentoOficial, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash documento: %w", err)
	}

	pessoa := entities.NewPessoa(
		in.NomeReferencial,
		in.Username,
		in.EmailInstitucional,
		documentoHash,
		in.Role,
		in.Tipo,
	)

	return s.creator.InsertWithProfile(ctx, pessoa)
}

// SignIn validates the credential for the Pessoa matching the identifier
// (email or username) and issues a bearer token.
func (s *Service) SignIn(ctx context.Context, identifier, password string) (*SignInResult, error) {
	if identifier == "" || password == "" {
		return nil, ErrMissingFields
	}

	pessoa, err := s.pessoas.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if err := CheckPassword(password, pessoa.PasswordHash); err != nil {
		return nil, err
	}

	// The profile reference is a convenience claim; its absence is not
	// an error.
	profileID := ""
	if user, err := s.users.FindByEmail(ctx, pessoa.EmailInstitucional); err == nil && user.ProfileID != nil {
		profileID = user.ProfileID.Hex()
	}

	token, err := IssueToken(pessoa, profileID, []byte(s.cfg.JWTSecret), s.cfg.TokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.users.UpdateLastLogin(ctx, pessoa.EmailInstitucional, time.Now()); err != nil {
		log.Printf("last-login update skipped for %s: %v", pessoa.EmailInstitucional, err)
	}

	return &SignInResult{Pessoa: pessoa, Token: token}, nil
}

// RecoverPassword verifies the documento oficial against the stored
// recovery hash and, on match, overwrites the password hash.
func (s *Service) RecoverPassword(ctx context.Context, identifier, documentoOficial, newPassword string) error {
	if identifier == "" || documentoOficial == "" || newPassword == "" {
		return ErrMissingFields
	}

	pessoa, err := s.pessoas.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}

	if err := CheckPassword(documentoOficial, pessoa.Location); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return ErrInvalidDocument
		}
		return err
	}

	newHash, err := HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	return s.pessoas.UpdatePassword(ctx, pessoa.IDPessoa, newHash)
}
