// Package sync reconciles identity state between the relational store
// (Pessoa/Account) and the document store (Profile/User).
//
// The two stores fail independently and there is no distributed
// transaction: creation is an ordered step list where the relational
// writes run first and the document writes follow, with a compensating
// delete of the relational rows when a document write fails. Repair and
// bulk migration re-derive document state from the relational store and
// are idempotent by existence check.
package sync

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/estantedigital/plataforma/internal/database/accounts"
	"github.com/estantedigital/plataforma/internal/documents"
	docprofiles "github.com/estantedigital/plataforma/internal/docstore/profiles"
	docusers "github.com/estantedigital/plataforma/internal/docstore/users"
	"github.com/estantedigital/plataforma/internal/entities"
)

// StatusSynchronized tags a successful repair outcome.
const StatusSynchronized = "synchronized"

// PessoaStore is the relational adapter the synchronizer writes through.
type PessoaStore interface {
	Create(ctx context.Context, p *entities.Pessoa) error
	GetByID(ctx context.Context, id uint) (*entities.Pessoa, error)
	GetByEmail(ctx context.Context, email string) (*entities.Pessoa, error)
	ListAll(ctx context.Context) ([]entities.Pessoa, error)
	Delete(ctx context.Context, id uint) error
}

// AccountStore is the adapter for the auxiliary Account rows.
type AccountStore interface {
	Create(ctx context.Context, a *entities.Account) error
	GetByPessoaID(ctx context.Context, pessoaID uint) (*entities.Account, error)
	Delete(ctx context.Context, id uint) error
}

// ProfileStore is the document adapter for Profile documents.
type ProfileStore interface {
	Create(ctx context.Context, p *documents.Profile) error
	FindByEmail(ctx context.Context, email string) (*documents.Profile, error)
}

// UserStore is the document adapter for User documents.
type UserStore interface {
	Create(ctx context.Context, u *documents.User) error
	FindByEmail(ctx context.Context, email string) (*documents.User, error)
	SetProfileID(ctx context.Context, id, profileID primitive.ObjectID) error
}

// Triple is the logical identity unit spanning both stores. Account may
// be nil: its creation is best-effort and never required for the triple
// to be valid.
type Triple struct {
	Pessoa  *entities.Pessoa   `json:"pessoa"`
	Account *entities.Account  `json:"account"`
	Profile *documents.Profile `json:"profile"`
	User    *documents.User    `json:"user"`
}

// SyncResult is a Triple plus the repair status tag.
type SyncResult struct {
	Triple
	Status string `json:"status"`
}

// MigrationOutcome is one per-record result of a bulk migration.
type MigrationOutcome struct {
	Email  string      `json:"email"`
	Status string      `json:"status"` // "success" or "error"
	Data   *SyncResult `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// MigrationSummary aggregates bulk migration outcomes.
type MigrationSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// Summarize derives the counts the migrate-all endpoint reports.
func Summarize(outcomes []MigrationOutcome) MigrationSummary {
	s := MigrationSummary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Status == "success" {
			s.Successful++
		} else {
			s.Failed++
		}
	}
	return s
}

// Synchronizer orchestrates creation, repair and bulk migration across
// the two stores. It holds no state between invocations; each call runs
// its steps strictly in order.
type Synchronizer struct {
	pessoas  PessoaStore
	accounts AccountStore
	profiles ProfileStore
	users    UserStore
}

// NewSynchronizer wires the four store adapters.
func NewSynchronizer(pessoas PessoaStore, accounts AccountStore, profiles ProfileStore, users UserStore) *Synchronizer {
	return &Synchronizer{
		pessoas:  pessoas,
		accounts: accounts,
		profiles: profiles,
		users:    users,
	}
}

// InsertWithProfile creates the full cross-store triple for a new Pessoa,
// or fails cleanly with no orphaned relational rows.
//
// Order matters: relational writes commit first, then the derived
// document writes. A failure in the Profile or User step triggers the
// compensating delete of the Account and Pessoa rows already committed.
// Account creation itself is best-effort and never fatal.
func (s *Synchronizer) InsertWithProfile(ctx context.Context, pessoa *entities.Pessoa) (*Triple, error) {
	if err := s.pessoas.Create(ctx, pessoa); err != nil {
		return nil, classify(err, CodeStoreUnavailable, "falha ao inserir pessoa")
	}

	// Re-read the committed row so the caller sees store-assigned
	// defaults and timestamps, not the in-memory aggregate.
	stored, err := s.pessoas.GetByID(ctx, pessoa.IDPessoa)
	if err != nil {
		return nil, &SyncError{
			Code:    CodeConsistency,
			Message: "pessoa não foi encontrada após inserção",
			Detail:  err.Error(),
			Err:     err,
		}
	}

	var account *entities.Account
	acc := &entities.Account{
		IDPessoa: stored.IDPessoa,
		Username: stored.Username,
		Location: stored.Location,
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		log.Printf("account creation skipped for pessoa %d: %v", stored.IDPessoa, err)
	} else {
		account = acc
	}

	profile := documents.NewProfileFor(stored)
	if err := s.profiles.Create(ctx, profile); err != nil {
		s.rollback(ctx, account, stored.IDPessoa)
		return nil, classify(err, CodeStoreUnavailable, "falha ao criar profile")
	}

	user := documents.NewUserFor(stored, profile.ID)
	if err := s.users.Create(ctx, user); err != nil {
		s.rollback(ctx, account, stored.IDPessoa)
		return nil, classify(err, CodeStoreUnavailable, "falha ao criar usuário")
	}

	return &Triple{Pessoa: stored, Account: account, Profile: profile, User: user}, nil
}

// rollback deletes the relational rows committed before a fatal document
// write failure. Its own failures are logged but never mask the
// triggering error.
func (s *Synchronizer) rollback(ctx context.Context, account *entities.Account, pessoaID uint) {
	if account != nil {
		if err := s.accounts.Delete(ctx, account.IDAccount); err != nil {
			log.Printf("rollback: failed to delete account %d: %v", account.IDAccount, err)
		}
	}
	if err := s.pessoas.Delete(ctx, pessoaID); err != nil {
		log.Printf("rollback: failed to delete pessoa %d: %v", pessoaID, err)
	}
}

// SyncOne ensures the Profile and User documents exist for the Pessoa
// with the given institutional email. Idempotent: existing documents are
// left untouched except to backfill a null profile reference. No rollback
// is needed here; every write is guarded by an existence check.
func (s *Synchronizer) SyncOne(ctx context.Context, email string) (*SyncResult, error) {
	pessoa, err := s.pessoas.GetByEmail(ctx, email)
	if err != nil {
		return nil, classify(err, CodeStoreUnavailable, "falha ao buscar pessoa")
	}

	account, err := s.accounts.GetByPessoaID(ctx, pessoa.IDPessoa)
	if err != nil {
		if !errors.Is(err, accounts.ErrNotFound) {
			log.Printf("sync %s: account lookup failed: %v", email, err)
		}
		account = nil
	}

	profile, err := s.profiles.FindByEmail(ctx, pessoa.EmailInstitucional)
	switch {
	case err == nil:
		// Existing profile stays as-is: no field-level merge.
	case isNotFound(err):
		profile = documents.NewProfileFor(pessoa)
		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, classify(err, CodeStoreUnavailable, "falha ao criar profile")
		}
	default:
		return nil, classify(err, CodeStoreUnavailable, "falha ao buscar profile")
	}

	user, err := s.users.FindByEmail(ctx, pessoa.EmailInstitucional)
	switch {
	case err == nil:
		if user.ProfileID == nil {
			if err := s.users.SetProfileID(ctx, user.ID, profile.ID); err != nil {
				return nil, classify(err, CodeStoreUnavailable, "falha ao vincular profile")
			}
			user.ProfileID = &profile.ID
		}
	case isNotFound(err):
		user = documents.NewUserFor(pessoa, profile.ID)
		if err := s.users.Create(ctx, user); err != nil {
			return nil, classify(err, CodeStoreUnavailable, "falha ao criar usuário")
		}
	default:
		return nil, classify(err, CodeStoreUnavailable, "falha ao buscar usuário")
	}

	return &SyncResult{
		Triple: Triple{Pessoa: pessoa, Account: account, Profile: profile, User: user},
		Status: StatusSynchronized,
	}, nil
}

// SyncAll applies SyncOne to every Pessoa, one at a time. One record's
// failure never aborts the batch; each outcome is captured keyed by
// email. A restart re-runs from the beginning and relies on SyncOne's
// idempotence to avoid duplicate writes.
func (s *Synchronizer) SyncAll(ctx context.Context) ([]MigrationOutcome, error) {
	all, err := s.pessoas.ListAll(ctx)
	if err != nil {
		return nil, classify(err, CodeStoreUnavailable, "falha ao listar pessoas")
	}

	outcomes := make([]MigrationOutcome, 0, len(all))
	for _, pessoa := range all {
		result, err := s.SyncOne(ctx, pessoa.EmailInstitucional)
		if err != nil {
			log.Printf("migration failed for %s: %v", pessoa.EmailInstitucional, err)
			outcomes = append(outcomes, MigrationOutcome{
				Email:  pessoa.EmailInstitucional,
				Status: "error",
				Error:  err.Error(),
			})
			continue
		}
		outcomes = append(outcomes, MigrationOutcome{
			Email:  pessoa.EmailInstitucional,
			Status: "success",
			Data:   result,
		})
	}

	return outcomes, nil
}

// isNotFound matches the not-found sentinels of both document adapters.
func isNotFound(err error) bool {
	return errors.Is(err, docprofiles.ErrNotFound) || errors.Is(err, docusers.ErrNotFound)
}
