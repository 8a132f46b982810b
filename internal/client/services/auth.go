// Package services contains application services for the CallSecure client.
// This file defines the authentication service: registration, sign-in,
// the remembered session and storage snapshots.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/callsecure/internal/client/models"
	"github.com/dmitrijs2005/callsecure/internal/client/repositories/kv"
	"github.com/dmitrijs2005/callsecure/internal/client/repositories/session"
	"github.com/dmitrijs2005/callsecure/internal/client/repositories/users"
	"github.com/dmitrijs2005/callsecure/internal/client/storage"
	"github.com/dmitrijs2005/callsecure/internal/common"
	"github.com/dmitrijs2005/callsecure/internal/logging"
	"github.com/dmitrijs2005/callsecure/internal/validation"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: validate the form and append a new user; field errors are
//     returned as FieldErrors, the error is set only when saving fails.
//   - Authenticate: match credentials against the stored users and optionally
//     remember the matched user.
//   - IsRemembered / RememberedUser: inspect the remembered session.
//   - Logout: forget the remembered session.
//   - Export / Import: copy the whole key/value store as a JSON object.
type AuthService interface {
	Register(ctx context.Context, form models.RegisterForm) (models.FieldErrors, error)
	Authenticate(ctx context.Context, creds models.Credentials, onSuccess func()) models.AuthResult
	IsRemembered(ctx context.Context) bool
	RememberedUser(ctx context.Context) (*models.UserRecord, error)
	Logout(ctx context.Context) error
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) error
}

type authService struct {
	store        storage.Storage
	logger       logging.Logger
	successDelay time.Duration

	// serializes the load-check-append-save of Register
	mu sync.Mutex

	afterFunc func(d time.Duration, f func()) *time.Timer
}

// NewAuthService constructs an AuthService over store. A non-positive
// successDelay runs the success callback immediately.
func NewAuthService(store storage.Storage, logger logging.Logger, successDelay time.Duration) AuthService {
	return &authService{
		store:        store,
		logger:       logger.With("module", "auth_service"),
		successDelay: successDelay,
		afterFunc:    time.AfterFunc,
	}
}

func (a *authService) usersRepo(repo kv.Repository) users.Repository {
	return users.NewKVRepository(repo)
}

func (a *authService) sessionRepo() session.Repository {
	return session.NewKVRepository(a.store.KV())
}

// loadUsers reads the collection, degrading any read failure to an empty
// collection.
func (a *authService) loadUsers(ctx context.Context, repo users.Repository) []models.UserRecord {
	list, err := repo.Load(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to load users, treating as empty", "error", err)
		return []models.UserRecord{}
	}
	return list
}

func validateRegisterForm(form models.RegisterForm) models.FieldErrors {
	errs := models.FieldErrors{}

	if !validation.Required(form.Username) {
		errs.Set(models.FieldUsername, MsgUsernameRequired)
	}

	if !validation.Required(form.Email) {
		errs.Set(models.FieldEmail, MsgEmailRequired)
	} else if !validation.Email(form.Email) {
		errs.Set(models.FieldEmail, MsgInvalidEmail)
	}

	if !validation.Required(form.Phone) {
		errs.Set(models.FieldPhone, MsgPhoneRequired)
	} else if !validation.Phone(form.Phone) {
		errs.Set(models.FieldPhone, MsgInvalidPhone)
	}

	if form.Password == "" {
		errs.Set(models.FieldPassword, MsgPasswordRequired)
	} else if !validation.Password(form.Password) {
		errs.Set(models.FieldPassword, MsgWeakPassword)
	}

	return errs
}

func (a *authService) Register(ctx context.Context, form models.RegisterForm) (models.FieldErrors, error) {
	errs := validateRegisterForm(form)
	candidate := form.Record()

	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.store.WithTx(ctx, func(ctx context.Context, repo kv.Repository) error {
		usersRepo := a.usersRepo(repo)
		existing := a.loadUsers(ctx, usersRepo)

		for _, u := range existing {
			if u.ConflictsWith(candidate) {
				errs.Set(models.FieldUsername, MsgUserExists)
				break
			}
		}

		if !errs.Empty() {
			return nil
		}

		return usersRepo.Save(ctx, append(existing, candidate))
	})
	if err != nil {
		return errs, fmt.Errorf("%w: failed to save users: %w", common.ErrorInternal, err)
	}

	if errs.Empty() {
		a.logger.Info(ctx, "user registered", "username", candidate.Username)
	} else {
		a.logger.Debug(ctx, "registration rejected", "fields", errs.Fields())
	}
	return errs, nil
}

func (a *authService) Authenticate(ctx context.Context, creds models.Credentials, onSuccess func()) models.AuthResult {
	errs := models.FieldErrors{}

	if !validation.Required(creds.Identifier) {
		errs.Set(models.FieldLogin, MsgIdentifierRequired)
	}
	if creds.Password == "" {
		errs.Set(models.FieldLogin, MsgPasswordRequired)
	}
	if !errs.Empty() {
		return models.AuthResult{Errors: errs}
	}

	var matched *models.UserRecord
	for _, u := range a.loadUsers(ctx, a.usersRepo(a.store.KV())) {
		if u.Identifies(creds.Identifier) && u.Password == creds.Password {
			u := u
			matched = &u
			break
		}
	}

	if matched == nil {
		errs.Set(models.FieldLogin, MsgInvalidLogin)
		a.logger.Debug(ctx, "login rejected")
		return models.AuthResult{Errors: errs}
	}

	if creds.RememberMe {
		if err := a.sessionRepo().Set(ctx, *matched); err != nil {
			a.logger.Warn(ctx, "failed to remember user", "username", matched.Username, "error", err)
		}
	}

	a.logger.Info(ctx, "user logged in", "username", matched.Username, "remember", creds.RememberMe)

	if onSuccess != nil {
		a.afterFunc(a.successDelay, onSuccess)
	}

	return models.AuthResult{Success: true, User: matched, Errors: errs}
}

// IsRemembered reports whether a remembered session is stored. The stored
// value is not parsed, so a malformed snapshot still counts.
func (a *authService) IsRemembered(ctx context.Context) bool {
	ok, err := a.sessionRepo().Exists(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to read remembered session", "error", err)
		return false
	}
	return ok
}

func (a *authService) RememberedUser(ctx context.Context) (*models.UserRecord, error) {
	return a.sessionRepo().Get(ctx)
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.sessionRepo().Delete(ctx); err != nil {
		return fmt.Errorf("%w: failed to forget session: %w", common.ErrorInternal, err)
	}
	a.logger.Info(ctx, "logged out")
	return nil
}

// Export writes every stored key with its raw JSON value as one JSON object.
func (a *authService) Export(ctx context.Context, w io.Writer) error {
	items, err := a.store.KV().List(ctx)
	if err != nil {
		return err
	}

	snapshot := make(map[string]json.RawMessage, len(items))
	for k, v := range items {
		if !json.Valid(v) {
			// values written outside the app are exported as JSON strings
			quoted, err := json.Marshal(string(v))
			if err != nil {
				return err
			}
			v = quoted
		}
		snapshot[k] = json.RawMessage(v)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Import writes every key of a snapshot produced by Export in a single
// transaction. Keys absent from the snapshot are left as they are.
func (a *authService) Import(ctx context.Context, r io.Reader) error {
	var snapshot map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidSnapshot, err)
	}
	if snapshot == nil {
		return fmt.Errorf("%w: not an object", common.ErrInvalidSnapshot)
	}
	for k, v := range snapshot {
		if k == "" || len(v) == 0 || !json.Valid(v) {
			return fmt.Errorf("%w: bad value for key %q", common.ErrInvalidSnapshot, k)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.store.WithTx(ctx, func(ctx context.Context, repo kv.Repository) error {
		for k, v := range snapshot {
			if err := repo.Set(ctx, k, []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to import snapshot: %w", err)
	}

	a.logger.Info(ctx, "snapshot imported", "keys", len(snapshot))
	return nil
}
