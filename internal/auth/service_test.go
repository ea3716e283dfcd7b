package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estantedigital/plataforma/internal/config"
	"github.com/estantedigital/plataforma/internal/database/pessoas"
	"github.com/estantedigital/plataforma/internal/documents"
	docusers "github.com/estantedigital/plataforma/internal/docstore/users"
	"github.com/estantedigital/plataforma/internal/entities"
	"github.com/estantedigital/plataforma/internal/sync"
)

// fakeCreator records the Pessoa handed to the synchronizer creation path.
type fakeCreator struct {
	created *entities.Pessoa
	fail    error
}

func (f *fakeCreator) InsertWithProfile(_ context.Context, p *entities.Pessoa) (*sync.Triple, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.created = p
	p.IDPessoa = 1
	return &sync.Triple{Pessoa: p}, nil
}

// fakePessoaStore is an in-memory PessoaStore keyed by email and username.
type fakePessoaStore struct {
	pessoas []*entities.Pessoa
}

func (f *fakePessoaStore) GetByIdentifier(_ context.Context, identifier string) (*entities.Pessoa, error) {
	for _, p := range f.pessoas {
		if p.EmailInstitucional == identifier || p.Username == identifier {
			return p, nil
		}
	}
	return nil, pessoas.ErrNotFound
}

func (f *fakePessoaStore) UpdatePassword(_ context.Context, id uint, hash string) error {
	for _, p := range f.pessoas {
		if p.IDPessoa == id {
			p.PasswordHash = hash
			return nil
		}
	}
	return pessoas.ErrNotFound
}

type fakeUserTracker struct {
	lastLogin map[string]time.Time
}

func (f *fakeUserTracker) FindByEmail(_ context.Context, _ string) (*documents.User, error) {
	return nil, docusers.ErrNotFound
}

func (f *fakeUserTracker) UpdateLastLogin(_ context.Context, email string, at time.Time) error {
	if f.lastLogin == nil {
		f.lastLogin = make(map[string]time.Time)
	}
	f.lastLogin[email] = at
	return nil
}

func testAuthConfig() config.Auth {
	return config.Auth{
		JWTSecret:   "test-secret-key",
		TokenExpiry: 2 * time.Hour,
		BcryptCost:  4, // minimum cost keeps the suite fast
	}
}

func testService(store *fakePessoaStore) (*Service, *fakeCreator, *fakeUserTracker) {
	creator := &fakeCreator{}
	tracker := &fakeUserTracker{}
	return NewService(creator, store, tracker, testAuthConfig()), creator, tracker
}

func TestSignUp_HashesDocumentoIntoBothCredentials(t *testing.T) {
	svc, creator, _ := testService(&fakePessoaStore{})

	triple, err := svc.SignUp(context.Background(), SignUpInput{
		NomeReferencial:    "Ana Silva",
		Username:           "ana",
		EmailInstitucional: "ana@x.org",
		DocumentoOficial:   "Doc123!@",
	})

	require.NoError(t, err)
	require.NotNil(t, triple)
	require.NotNil(t, creator.created)

	// The documento seeds the password hash and the recovery credential.
	assert.NotEqual(t, "Doc123!@", creator.created.PasswordHash)
	assert.Equal(t, creator.created.PasswordHash, creator.created.Location)
	assert.NoError(t, CheckPassword("Doc123!@", creator.created.PasswordHash))

	assert.Equal(t, entities.RoleUser, creator.created.Role)
	assert.Equal(t, entities.TipoPessoaFisica, creator.created.Tipo)
	assert.NotEmpty(t, creator.created.ManagerKey)
}

func TestSignUp_MissingFields(t *testing.T) {
	svc, _, _ := testService(&fakePessoaStore{})

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Username: "ana",
	})

	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestSignUp_InvalidRole(t *testing.T) {
	svc, _, _ := testService(&fakePessoaStore{})

	_, err := svc.SignUp(context.Background(), SignUpInput{
		NomeReferencial:    "Ana Silva",
		Username:           "ana",
		EmailInstitucional: "ana@x.org",
		DocumentoOficial:   "Doc123!@",
		Role:               "superuser",
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func signedUpPessoa(t *testing.T, password string) *entities.Pessoa {
	t.Helper()
	hash, err := HashPassword(password, 4)
	require.NoError(t, err)
	return &entities.Pessoa{
		IDPessoa:           7,
		NomeReferencial:    "Ana Silva",
		Username:           "ana",
		EmailInstitucional: "ana@x.org",
		PasswordHash:       hash,
		Location:           hash,
		Role:               entities.RoleUser,
		Tipo:               entities.TipoPessoaFisica,
	}
}

func TestSignIn_ByEmailAndByUsername(t *testing.T) {
	store := &fakePessoaStore{pessoas: []*entities.Pessoa{signedUpPessoa(t, "Doc123!@")}}
	svc, _, tracker := testService(store)

	for _, identifier := range []string{"ana@x.org", "ana"} {
		result, err := svc.SignIn(context.Background(), identifier, "Doc123!@")

		require.NoError(t, err, identifier)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "ana", result.Pessoa.Username)

		claims := VerifyToken(result.Token, []byte("test-secret-key"))
		require.NotNil(t, claims)
		assert.EqualValues(t, 7, claims.ID)
	}

	assert.Contains(t, tracker.lastLogin, "ana@x.org")
}

func TestSignIn_WrongPassword(t *testing.T) {
	store := &fakePessoaStore{pessoas: []*entities.Pessoa{signedUpPessoa(t, "Doc123!@")}}
	svc, _, _ := testService(store)

	_, err := svc.SignIn(context.Background(), "ana@x.org", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestSignIn_UnknownIdentifier(t *testing.T) {
	svc, _, _ := testService(&fakePessoaStore{})

	_, err := svc.SignIn(context.Background(), "ninguem@x.org", "whatever")

	assert.ErrorIs(t, err, pessoas.ErrNotFound)
}

func TestRecoverPassword_Succeeds(t *testing.T) {
	store := &fakePessoaStore{pessoas: []*entities.Pessoa{signedUpPessoa(t, "Doc123!@")}}
	svc, _, _ := testService(store)
	ctx := context.Background()

	err := svc.RecoverPassword(ctx, "ana@x.org", "Doc123!@", "NovaSenha42!")
	require.NoError(t, err)

	// The new password works; the old one no longer does.
	_, err = svc.SignIn(ctx, "ana@x.org", "NovaSenha42!")
	assert.NoError(t, err)
	_, err = svc.SignIn(ctx, "ana@x.org", "Doc123!@")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	// The recovery credential itself is untouched: recovery can run again.
	err = svc.RecoverPassword(ctx, "ana@x.org", "Doc123!@", "OutraSenha7!")
	assert.NoError(t, err)
}

func TestRecoverPassword_WrongDocumento(t *testing.T) {
	store := &fakePessoaStore{pessoas: []*entities.Pessoa{signedUpPessoa(t, "Doc123!@")}}
	svc, _, _ := testService(store)

	err := svc.RecoverPassword(context.Background(), "ana@x.org", "Doc999!!", "NovaSenha42!")

	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestSignUp_PropagatesSynchronizerError(t *testing.T) {
	creator := &fakeCreator{fail: errors.New("store down")}
	svc := NewService(creator, &fakePessoaStore{}, &fakeUserTracker{}, testAuthConfig())

	_, err := svc.SignUp(context.Background(), SignUpInput{
		NomeReferencial:    "Ana Silva",
		Username:           "ana",
		EmailInstitucional: "ana@x.org",
		DocumentoOficial:   "Doc123!@",
	})

	assert.EqualError(t, err, "store down")
}
