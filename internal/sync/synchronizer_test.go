package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/estantedigital/plataforma/internal/database/accounts"
	"github.com/estantedigital/plataforma/internal/database/pessoas"
	"github.com/estantedigital/plataforma/internal/documents"
	docprofiles "github.com/estantedigital/plataforma/internal/docstore/profiles"
	docusers "github.com/estantedigital/plataforma/internal/docstore/users"
	"github.com/estantedigital/plataforma/internal/entities"
)

// fakeProfileStore is an in-memory stand-in for the Profile collection.
type fakeProfileStore struct {
	byEmail    map[string]*documents.Profile
	failCreate error
	creates    int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{byEmail: make(map[string]*documents.Profile)}
}

func (f *fakeProfileStore) Create(_ context.Context, p *documents.Profile) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	p.ID = primitive.NewObjectID()
	f.byEmail[p.EmailInstitucional] = p
	f.creates++
	return nil
}

func (f *fakeProfileStore) FindByEmail(_ context.Context, email string) (*documents.Profile, error) {
	p, ok := f.byEmail[email]
	if !ok {
		return nil, docprofiles.ErrNotFound
	}
	return p, nil
}

// fakeUserStore is an in-memory stand-in for the User collection.
// failFor rejects creation for one email, simulating a schema-validation
// rejection by the document store.
type fakeUserStore struct {
	byEmail map[string]*documents.User
	failFor string
	creates int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*documents.User)}
}

func (f *fakeUserStore) Create(_ context.Context, u *documents.User) error {
	if f.failFor != "" && u.EmailInstitucional == f.failFor {
		return errors.New("document failed validation")
	}
	u.ID = primitive.NewObjectID()
	f.byEmail[u.EmailInstitucional] = u
	f.creates++
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*documents.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, docusers.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) SetProfileID(_ context.Context, id, profileID primitive.ObjectID) error {
	for _, u := range f.byEmail {
		if u.ID == id && u.ProfileID == nil {
			u.ProfileID = &profileID
		}
	}
	return nil
}

type fixture struct {
	sync     *Synchronizer
	db       *gorm.DB
	pessoas  *pessoas.Repository
	profiles *fakeProfileStore
	users    *fakeUserStore
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Pessoa{}, &entities.Account{}))

	pessoaRepo := pessoas.NewRepository(db)
	accountRepo := accounts.NewRepository(db)
	profileStore := newFakeProfileStore()
	userStore := newFakeUserStore()

	return &fixture{
		sync:     NewSynchronizer(pessoaRepo, accountRepo, profileStore, userStore),
		db:       db,
		pessoas:  pessoaRepo,
		profiles: profileStore,
		users:    userStore,
	}
}

func countPessoas(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entities.Pessoa{}).Count(&n).Error)
	return n
}

func countAccounts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entities.Account{}).Count(&n).Error)
	return n
}

func newTestPessoa(username, email string) *entities.Pessoa {
	return entities.NewPessoa("Ana Silva", username, email, "$2a$10$fakehash", "", "")
}

func TestInsertWithProfile_CreatesTriple(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	triple, err := f.sync.InsertWithProfile(ctx, newTestPessoa("ana", "ana@x.org"))

	require.NoError(t, err)
	require.NotNil(t, triple.Pessoa)
	assert.NotZero(t, triple.Pessoa.IDPessoa)
	assert.Equal(t, entities.RoleUser, triple.Pessoa.Role)
	assert.Equal(t, entities.TipoPessoaFisica, triple.Pessoa.Tipo)

	require.NotNil(t, triple.Account)
	assert.Equal(t, triple.Pessoa.IDPessoa, triple.Account.IDPessoa)

	require.NotNil(t, triple.Profile)
	assert.False(t, triple.Profile.ID.IsZero())
	assert.Equal(t, "ana@x.org", triple.Profile.EmailInstitucional)
	assert.Empty(t, triple.Profile.Educacao)
	assert.NotNil(t, triple.Profile.Educacao)

	require.NotNil(t, triple.User)
	require.NotNil(t, triple.User.ProfileID)
	assert.Equal(t, triple.Profile.ID, *triple.User.ProfileID)
	assert.True(t, triple.User.IsActive)

	assert.EqualValues(t, 1, countPessoas(t, f.db))
	assert.EqualValues(t, 1, countAccounts(t, f.db))
}

func TestInsertWithProfile_DuplicateEmail(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.sync.InsertWithProfile(ctx, newTestPessoa("ana", "ana@x.org"))
	require.NoError(t, err)

	_, err = f.sync.InsertWithProfile(ctx, newTestPessoa("outra", "ana@x.org"))

	require.Error(t, err)
	se, ok := AsSyncError(err)
	require.True(t, ok)
	assert.Equal(t, CodeDuplicateEmail, se.Code)
	assert.Equal(t, "email_institucional", se.Field)
	assert.NotEmpty(t, se.Detail)

	// No orphaned rows and no extra documents.
	assert.EqualValues(t, 1, countPessoas(t, f.db))
	assert.Equal(t, 1, f.profiles.creates)
	assert.Equal(t, 1, f.users.creates)
}

func TestInsertWithProfile_DuplicateUsername(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.sync.InsertWithProfile(ctx, newTestPessoa("ana", "ana@x.org"))
	require.NoError(t, err)

	_, err = f.sync.InsertWithProfile(ctx, newTestPessoa("ana", "outra@x.org"))

	require.Error(t, err)
	se, ok := AsSyncError(err)
	require.True(t, ok)
	assert.Equal(t, CodeDuplicateUsername, se.Code)
	assert.Equal(t, "username", se.Field)
	assert.EqualValues(t, 1, countPessoas(t, f.db))
}

func TestInsertWithProfile_RollbackOnProfileFailure(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	f.profiles.failCreate = errors.New("profile collection rejected write")

	_, err := f.sync.InsertWithProfile(ctx, newTestPessoa("ana", "ana@x.org"))

	require.Error(t, err)
	se, ok := AsSyncError(err)
	require.True(t, ok)
	assert.Equal(t, CodeStoreUnavailable, se.Code)
	assert.Contains(t, se.Detail, "rejected write")

	// The compensating delete removed both relational rows.
	assert.EqualValues(t, 0, countPessoas(t, f.db))
	assert.EqualValues(t, 0, countAccounts(t, f.db))
	assert.Equal(t, 0, f.users.creates)
}

func TestInsertWithProfile_RollbackOnUserFailure(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	f.users.failFor = "ana@x.org"

	_, err := f.sync.InsertWithProfile(ctx, newTestPessoa("ana", "ana@x.org"))

	require.Error(t, err)
	assert.EqualValues(t, 0, countPessoas(t, f.db))
	assert.EqualValues(t, 0, countAccounts(t, f.db))
}

func TestSyncOne_NotFound(t *testing.T) {
	f := setupFixture(t)

	_, err := f.sync.SyncOne(context.Background(), "ninguem@x.org")

	require.Error(t, err)
	se, ok := AsSyncError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, se.Code)
}

func TestSyncOne_RepairsAfterPartialFailure(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	// A Pessoa committed with no document-store counterpart, as left
	// behind by a crash between the relational and document writes.
	require.NoError(t, f.pessoas.Create(ctx, newTestPessoa("ana", "ana@x.org")))

	result, err := f.sync.SyncOne(ctx, "ana@x.org")

	require.NoError(t, err)
	assert.Equal(t, StatusSynchronized, result.Status)
	require.NotNil(t, result.Profile)
	require.NotNil(t, result.User)
	require.NotNil(t, result.User.ProfileID)
	assert.Equal(t, result.Profile.ID, *result.User.ProfileID)
	assert.Nil(t, result.Account) // no account row existed, tolerated
}

func TestSyncOne_Idempotent(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	require.NoError(t, f.pessoas.Create(ctx, newTestPessoa("ana", "ana@x.org")))

	first, err := f.sync.SyncOne(ctx, "ana@x.org")
	require.NoError(t, err)
	second, err := f.sync.SyncOne(ctx, "ana@x.org")
	require.NoError(t, err)

	assert.Equal(t, first.Profile.ID, second.Profile.ID)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, 1, f.profiles.creates)
	assert.Equal(t, 1, f.users.creates)
}

func TestSyncOne_BackfillsNilProfileReference(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	pessoa := newTestPessoa("ana", "ana@x.org")
	require.NoError(t, f.pessoas.Create(ctx, pessoa))

	// User document exists but was never linked to a profile.
	orphanUser := documents.NewUserFor(pessoa, primitive.NilObjectID)
	orphanUser.ProfileID = nil
	require.NoError(t, f.users.Create(ctx, orphanUser))

	result, err := f.sync.SyncOne(ctx, "ana@x.org")

	require.NoError(t, err)
	require.NotNil(t, result.User.ProfileID)
	assert.Equal(t, result.Profile.ID, *result.User.ProfileID)
	assert.Equal(t, orphanUser.ID, result.User.ID) // existing doc kept
}

func TestSyncAll_IsolatesFailures(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	require.NoError(t, f.pessoas.Create(ctx, newTestPessoa("ana", "ana@x.org")))
	require.NoError(t, f.pessoas.Create(ctx, newTestPessoa("bia", "bia@x.org")))
	require.NoError(t, f.pessoas.Create(ctx, newTestPessoa("caio", "caio@x.org")))

	// The middle record is rejected by the document store.
	f.users.failFor = "bia@x.org"

	outcomes, err := f.sync.SyncAll(ctx)

	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.Equal(t, "success", outcomes[0].Status)
	assert.Equal(t, "error", outcomes[1].Status)
	assert.Equal(t, "bia@x.org", outcomes[1].Email)
	assert.NotEmpty(t, outcomes[1].Error)
	assert.Equal(t, "success", outcomes[2].Status)

	summary := Summarize(outcomes)
	assert.Equal(t, MigrationSummary{Total: 3, Successful: 2, Failed: 1}, summary)
}

func TestSyncAll_Rerunnable(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	require.NoError(t, f.pessoas.Create(ctx, newTestPessoa("ana", "ana@x.org")))
	require.NoError(t, f.pessoas.Create(ctx, newTestPessoa("bia", "bia@x.org")))

	_, err := f.sync.SyncAll(ctx)
	require.NoError(t, err)
	outcomes, err := f.sync.SyncAll(ctx)
	require.NoError(t, err)

	// Second run creates nothing new.
	assert.Equal(t, 2, f.profiles.creates)
	assert.Equal(t, 2, f.users.creates)
	assert.Equal(t, MigrationSummary{Total: 2, Successful: 2}, Summarize(outcomes))
}
