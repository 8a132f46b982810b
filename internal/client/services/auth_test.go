package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/callsecure/internal/client/models"
	"github.com/dmitrijs2005/callsecure/internal/client/repositories/kv"
	"github.com/dmitrijs2005/callsecure/internal/client/repositories/session"
	"github.com/dmitrijs2005/callsecure/internal/client/repositories/users"
	"github.com/dmitrijs2005/callsecure/internal/client/storage"
	"github.com/dmitrijs2005/callsecure/internal/common"
	"github.com/dmitrijs2005/callsecure/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

var aliceForm = models.RegisterForm{
	Username: "alice",
	Email:    "a@b.com",
	Phone:    "12345678",
	Password: "Secret1!",
}

func newService(t *testing.T, store storage.Storage) *authService {
	t.Helper()
	svc := NewAuthService(store, logging.Discard(), 0).(*authService)
	svc.afterFunc = func(_ time.Duration, f func()) *time.Timer {
		f()
		return nil
	}
	return svc
}

func loadUsers(t *testing.T, store storage.Storage) []models.UserRecord {
	t.Helper()
	list, err := users.NewKVRepository(store.KV()).Load(context.Background())
	require.NoError(t, err)
	return list
}

func mustRegister(t *testing.T, svc AuthService, form models.RegisterForm) {
	t.Helper()
	errs, err := svc.Register(context.Background(), form)
	require.NoError(t, err)
	require.True(t, errs.Empty(), "unexpected errors: %v", errs)
}

// ---- fake storage ----

// failingKV fails Set and Delete for one key and delegates everything else.
type failingKV struct {
	kv.Repository
	key string
	err error
}

func (f failingKV) Set(ctx context.Context, key string, value []byte) error {
	if key == f.key {
		return f.err
	}
	return f.Repository.Set(ctx, key, value)
}

func (f failingKV) Delete(ctx context.Context, key string) error {
	if key == f.key {
		return f.err
	}
	return f.Repository.Delete(ctx, key)
}

type fakeStorage struct {
	*storage.MemoryStorage
	key string
	err error
}

func (f *fakeStorage) KV() kv.Repository {
	return failingKV{Repository: f.MemoryStorage.KV(), key: f.key, err: f.err}
}

func (f *fakeStorage) WithTx(ctx context.Context, fn func(ctx context.Context, repo kv.Repository) error) error {
	return f.MemoryStorage.WithTx(ctx, func(ctx context.Context, repo kv.Repository) error {
		return fn(ctx, failingKV{Repository: repo, key: f.key, err: f.err})
	})
}

// ---- Register ----

func TestRegister_Success(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := newService(t, store)

	errs, err := svc.Register(context.Background(), aliceForm)
	require.NoError(t, err)
	assert.True(t, errs.Empty())

	got := loadUsers(t, store)
	require.Len(t, got, 1)
	assert.Equal(t, aliceForm.Record(), got[0])
}

func TestRegister_FieldErrors(t *testing.T) {
	tests := []struct {
		name string
		form models.RegisterForm
		want models.FieldErrors
	}{
		{
			name: "all empty",
			form: models.RegisterForm{},
			want: models.FieldErrors{
				models.FieldUsername: MsgUsernameRequired,
				models.FieldEmail:    MsgEmailRequired,
				models.FieldPhone:    MsgPhoneRequired,
				models.FieldPassword: MsgPasswordRequired,
			},
		},
		{
			name: "whitespace only",
			form: models.RegisterForm{Username: "  ", Email: "\t", Phone: " ", Password: "   "},
			want: models.FieldErrors{
				models.FieldUsername: MsgUsernameRequired,
				models.FieldEmail:    MsgEmailRequired,
				models.FieldPhone:    MsgPhoneRequired,
				models.FieldPassword: MsgWeakPassword,
			},
		},
		{
			name: "bad shapes",
			form: models.RegisterForm{Username: "bob", Email: "bob@example", Phone: "+123", Password: "password"},
			want: models.FieldErrors{
				models.FieldEmail:    MsgInvalidEmail,
				models.FieldPhone:    MsgInvalidPhone,
				models.FieldPassword: MsgWeakPassword,
			},
		},
		{
			name: "password without digit",
			form: models.RegisterForm{Username: "bob", Email: "bob@x.io", Phone: "555", Password: "Secret!!"},
			want: models.FieldErrors{models.FieldPassword: MsgWeakPassword},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStorage()
			svc := newService(t, store)

			errs, err := svc.Register(context.Background(), tt.form)
			require.NoError(t, err)
			assert.Equal(t, tt.want, errs)
			assert.Empty(t, loadUsers(t, store))
		})
	}
}

func TestRegister_Conflicts(t *testing.T) {
	tests := []struct {
		name string
		form models.RegisterForm
	}{
		{"same username", models.RegisterForm{Username: "alice", Email: "other@b.com", Phone: "999", Password: "Secret2!"}},
		{"same email", models.RegisterForm{Username: "bob", Email: "a@b.com", Phone: "999", Password: "Secret2!"}},
		{"same phone", models.RegisterForm{Username: "bob", Email: "other@b.com", Phone: "12345678", Password: "Secret2!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStorage()
			svc := newService(t, store)
			mustRegister(t, svc, aliceForm)

			errs, err := svc.Register(context.Background(), tt.form)
			require.NoError(t, err)
			assert.Equal(t, models.FieldErrors{models.FieldUsername: MsgUserExists}, errs)
			assert.Len(t, loadUsers(t, store), 1)
		})
	}
}

func TestRegister_ConflictOverwritesUsernameError(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := newService(t, store)
	mustRegister(t, svc, aliceForm)

	errs, err := svc.Register(context.Background(), models.RegisterForm{Email: "a@b.com", Phone: "1", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, MsgUserExists, errs[models.FieldUsername])
	assert.Equal(t, MsgWeakPassword, errs[models.FieldPassword])
}

func TestRegister_AppendsInOrder(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := newService(t, store)

	mustRegister(t, svc, aliceForm)
	mustRegister(t, svc, models.RegisterForm{Username: "bob", Email: "bob@x.io", Phone: "555", Password: "Passw0rd?"})

	got := loadUsers(t, store)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].Username)
	assert.Equal(t, "bob", got[1].Username)
}

func TestRegister_MalformedCollectionDegradesToEmpty(t *testing.T) {
	store := storage.NewMemoryStorage()
	require.NoError(t, store.KV().Set(context.Background(), common.UsersKey, []byte("{broken")))
	svc := newService(t, store)

	mustRegister(t, svc, aliceForm)
	assert.Len(t, loadUsers(t, store), 1)
}

func TestRegister_SaveErrorIsReturned(t *testing.T) {
	boom := errors.New("disk full")
	store := &fakeStorage{MemoryStorage: storage.NewMemoryStorage(), key: common.UsersKey, err: boom}
	svc := newService(t, store)

	errs, err := svc.Register(context.Background(), aliceForm)
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.True(t, errs.Empty())
	assert.Empty(t, loadUsers(t, store.MemoryStorage))
}

func TestRegister_ConcurrentSameUserOnlyOneWins(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := newService(t, store)

	const n = 8
	var wg sync.WaitGroup
	results := make([]models.FieldErrors, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs, err := svc.Register(context.Background(), aliceForm)
			assert.NoError(t, err)
			results[i] = errs
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, r := range results {
		if r.Empty() {
			ok++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Len(t, loadUsers(t, store), 1)
}

// ---- Authenticate ----

func TestAuthenticate_RoundTripByEveryIdentifier(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := newService(t, store)
	mustRegister(t, svc, aliceForm)

	for _, id := range []string{"alice", "a@b.com", "12345678"} {
		res := svc.Authenticate(context.Background(), models.Credentials{Identifier: id, Password: "Secret1!"}, nil)
		require.True(t, res.Success, "identifier %q", id)
		require.NotNil(t, res.User)
		assert.Equal(t, aliceForm.Record(), *res.User)
		assert.True(t, res.Errors.Empty())
	}
	assert.False(t, svc.IsRemembered(context.Background()))
}

func TestAuthenticate_ConcurrentWithRegister(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := newService(t, store)
	mustRegister(t, svc, aliceForm)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			errs, err := svc.Register(ctx, models.RegisterForm{
				Username: fmt.Sprintf("user%d", i),
				Email:    fmt.Sprintf("user%d@b.com", i),
				Phone:    fmt.Sprintf("9%07d", i),
				Password: "Secret1!",
			})
			assert.NoError(t, err)
			assert.True(t, errs.Empty())
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	failures := 0
	for {
		select {
		case <-done:
			assert.Zero(t, failures, "alice failed to log in while others registered")
			assert.Len(t, loadUsers(t, store), 201)
			return
		default:
		}
		res := svc.Authenticate(ctx, models.Credentials{Identifier: "alice", Password: "Secret1!"}, nil)
		if !res.Success {
			failures++
		}
	}
}

func TestAuthenticate_RequiredMessages(t *testing.T) {
	svc := newService(t, storage.NewMemoryStorage())
	ctx := context.Background()

	res := svc.Authenticate(ctx, models.Credentials{Identifier: "  ", Password: "x"}, nil)
	assert.False(t, res.Success)
	assert.Equal(t, models.FieldErrors{models.FieldLogin: MsgIdentifierRequired}, res.Errors)

	res = svc.Authenticate(ctx, models.Credentials{Identifier: "alice"}, nil)
	assert.Equal(t, models.FieldErrors{models.FieldLogin: MsgPasswordRequired}, res.Errors)

	res = svc.Authenticate(ctx, models.Credentials{}, nil)
	assert.Equal(t, models.FieldErrors{models.FieldLogin: MsgPasswordRequired}, res.Errors)
}

func TestAuthenticate_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	svc := newService(t, storage.NewMemoryStorage())
	mustRegister(t, svc, aliceForm)
	ctx := context.Background()

	wrongPassword := svc.Authenticate(ctx, models.Credentials{Identifier: "alice", Password: "Secret2!"}, nil)
	wrongUser := svc.Authenticate(ctx, models.Credentials{Identifier: "mallory", Password: "Secret1!"}, nil)
	paddedUser := svc.Authenticate(ctx, models.Credentials{Identifier: " alice", Password: "Secret1!"}, nil)

	for _, res := range []models.AuthResult{wrongPassword, wrongUser, paddedUser} {
		assert.False(t, res.Success)
		assert.Nil(t, res.User)
		assert.Equal(t, models.FieldErrors{models.FieldLogin: MsgInvalidLogin}, res.Errors)
	}
}

func TestAuthenticate_RememberMe(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := newService(t, store)
	mustRegister(t, svc, aliceForm)
	ctx := context.Background()

	res := svc.Authenticate(ctx, models.Credentials{Identifier: "a@b.com", Password: "Secret1!", RememberMe: true}, nil)
	require.True(t, res.Success)

	assert.True(t, svc.IsRemembered(ctx))
	u, err := svc.RememberedUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, aliceForm.Record(), *u)

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.IsRemembered(ctx))
	require.NoError(t, svc.Logout(ctx))
}

func TestAuthenticate_RememberFailureDoesNotFailLogin(t *testing.T) {
	store := &fakeStorage{MemoryStorage: storage.NewMemoryStorage(), key: common.RememberedUserKey, err: errors.New("read-only")}
	svc := newService(t, store)
	mustRegister(t, svc, aliceForm)

	res := svc.Authenticate(context.Background(), models.Credentials{Identifier: "alice", Password: "Secret1!", RememberMe: true}, nil)
	assert.True(t, res.Success)
	assert.False(t, svc.IsRemembered(context.Background()))
}

func TestLogout_StorageErrorIsInternal(t *testing.T) {
	boom := errors.New("read-only")
	store := &fakeStorage{MemoryStorage: storage.NewMemoryStorage(), key: common.RememberedUserKey, err: boom}
	svc := newService(t, store)

	err := svc.Logout(context.Background())
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestAuthenticate_SchedulesCallbackAfterDelay(t *testing.T) {
	svc := newService(t, storage.NewMemoryStorage())
	mustRegister(t, svc, aliceForm)

	var gotDelay time.Duration
	calls := 0
	svc.successDelay = 1500 * time.Millisecond
	svc.afterFunc = func(d time.Duration, f func()) *time.Timer {
		gotDelay = d
		f()
		return nil
	}

	res := svc.Authenticate(context.Background(), models.Credentials{Identifier: "alice", Password: "Secret1!"}, func() { calls++ })
	require.True(t, res.Success)
	assert.Equal(t, 1500*time.Millisecond, gotDelay)
	assert.Equal(t, 1, calls)

	res = svc.Authenticate(context.Background(), models.Credentials{Identifier: "alice", Password: "nope"}, func() { calls++ })
	require.False(t, res.Success)
	assert.Equal(t, 1, calls)
}

func TestAuthenticate_RealTimerFires(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewAuthService(store, logging.Discard(), 10*time.Millisecond)
	mustRegister(t, svc, aliceForm)

	done := make(chan struct{})
	res := svc.Authenticate(context.Background(), models.Credentials{Identifier: "alice", Password: "Secret1!"}, func() { close(done) })
	require.True(t, res.Success)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("success callback did not run")
	}
}

// ---- session ----

func TestIsRemembered_MalformedSessionCounts(t *testing.T) {
	store := storage.NewMemoryStorage()
	require.NoError(t, store.KV().Set(context.Background(), common.RememberedUserKey, []byte("garbage")))
	svc := newService(t, store)

	assert.True(t, svc.IsRemembered(context.Background()))
	_, err := svc.RememberedUser(context.Background())
	require.ErrorIs(t, err, session.ErrMalformedSession)
}

// ---- Export / Import ----

func TestExportImport_RoundTrip(t *testing.T) {
	src := storage.NewMemoryStorage()
	svc := newService(t, src)
	mustRegister(t, svc, aliceForm)
	res := svc.Authenticate(context.Background(), models.Credentials{Identifier: "alice", Password: "Secret1!", RememberMe: true}, nil)
	require.True(t, res.Success)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf))
	assert.Contains(t, buf.String(), `"users"`)
	assert.Contains(t, buf.String(), `"rememberedUser"`)

	dst := storage.NewMemoryStorage()
	other := newService(t, dst)
	require.NoError(t, other.Import(context.Background(), &buf))

	assert.Equal(t, loadUsers(t, src), loadUsers(t, dst))
	assert.True(t, other.IsRemembered(context.Background()))
	res = other.Authenticate(context.Background(), models.Credentials{Identifier: "12345678", Password: "Secret1!"}, nil)
	assert.True(t, res.Success)
}

func TestImport_InvalidIsAllOrNothing(t *testing.T) {
	tests := []string{
		``,
		`[]`,
		`null`,
		`{"users": [}`,
		`{"users": [], "": 1}`,
	}

	for _, in := range tests {
		store := storage.NewMemoryStorage()
		svc := newService(t, store)
		mustRegister(t, svc, aliceForm)

		err := svc.Import(context.Background(), strings.NewReader(in))
		require.ErrorIs(t, err, common.ErrInvalidSnapshot, "input %q", in)
		assert.Len(t, loadUsers(t, store), 1, "input %q", in)
	}
}

func TestImport_KeepsKeysNotInSnapshot(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := newService(t, store)
	mustRegister(t, svc, aliceForm)

	require.NoError(t, svc.Import(context.Background(), strings.NewReader(`{"rememberedUser":{"username":"alice"}}`)))
	assert.Len(t, loadUsers(t, store), 1)
	assert.True(t, svc.IsRemembered(context.Background()))
}

func TestExport_NonJSONValueIsQuoted(t *testing.T) {
	store := storage.NewMemoryStorage()
	require.NoError(t, store.KV().Set(context.Background(), "note", []byte("plain text")))
	svc := newService(t, store)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &buf))
	assert.JSONEq(t, `{"note":"plain text"}`, buf.String())
}

// ---- SQLite backend ----

func TestService_SQLiteBackend(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "auth.db")
	store, err := storage.Open(context.Background(), storage.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := newService(t, store)
	mustRegister(t, svc, aliceForm)

	errs, err := svc.Register(context.Background(), models.RegisterForm{Username: "alice", Email: "x@y.zz", Phone: "1", Password: "Secret9!"})
	require.NoError(t, err)
	assert.Equal(t, MsgUserExists, errs[models.FieldUsername])

	res := svc.Authenticate(context.Background(), models.Credentials{Identifier: "a@b.com", Password: "Secret1!", RememberMe: true}, nil)
	require.True(t, res.Success)

	store2, err := storage.Open(context.Background(), storage.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store2.Close() })

	reopened := newService(t, store2)
	assert.True(t, reopened.IsRemembered(context.Background()))
	require.NoError(t, reopened.Logout(context.Background()))
	assert.False(t, reopened.IsRemembered(context.Background()))
}
