package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/placeguide/account-core/internal/logger"
	"github.com/placeguide/account-core/internal/model"
)

const (
	defaultRefreshInterval = 5 * time.Minute
	defaultCallTimeout     = 15 * time.Second
)

// Option tunes the manager.
type Option func(*Manager)

// WithRefreshInterval sets the period of the token-refresh scheduler.
func WithRefreshInterval(d time.Duration) Option {
	return func(m *Manager) { m.refreshInterval = d }
}

// WithCallTimeout bounds every provider call issued by the manager.
func WithCallTimeout(d time.Duration) Option {
	return func(m *Manager) { m.callTimeout = d }
}

// Manager is the single source of truth for authentication state. It owns
// the live session, drives the token-refresh scheduler off app-lifecycle
// transitions, and projects the current user to presentation layers.
type Manager struct {
	identity model.IdentityProvider
	store    model.SessionStore
	logger   *logger.Logger

	refreshInterval time.Duration
	callTimeout     time.Duration

	mu            sync.Mutex
	status        model.AuthStatus
	session       model.Session
	foreground    bool
	cancelRefresh context.CancelFunc
	unbind        func()

	subMu   sync.Mutex
	subs    map[int]chan model.AuthEvent
	nextSub int
}

func NewManager(identity model.IdentityProvider, store model.SessionStore, logger *logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		identity:        identity,
		store:           store,
		logger:          logger,
		refreshInterval: defaultRefreshInterval,
		callTimeout:     defaultCallTimeout,
		status:          model.StatusUnauthenticated,
		// The app starts foregrounded; the first lifecycle event corrects
		// this if it does not.
		foreground: true,
		subs:       make(map[int]chan model.AuthEvent),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Bind subscribes the manager to app-lifecycle transitions. The subscription
// is released by Close.
func (m *Manager) Bind(lifecycle model.Lifecycle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unbind != nil {
		return
	}
	m.unbind = lifecycle.Subscribe(m.handleAppState)
}

// Restore performs the cold-start session query: the persisted snapshot is
// validated against the provider by refreshing it. Any failure degrades to
// Unauthenticated without error; there is nothing the caller can retry.
func (m *Manager) Restore(ctx context.Context) model.AuthStatus {
	stored, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			m.logger.Error("failed to load persisted session", "error", err)
		}
		return model.StatusUnauthenticated
	}

	cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	renewed, err := m.identity.Refresh(cctx, stored)
	if err != nil {
		m.logger.Info("persisted session is no longer valid", "error", err)
		if err := m.store.Clear(ctx); err != nil {
			m.logger.Error("failed to clear persisted session", "error", err)
		}
		return model.StatusUnauthenticated
	}

	m.adopt(renewed)
	return model.StatusAuthenticated
}

// SignIn exchanges credentials for a session. On failure the current state
// is left untouched.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	session, err := m.identity.Authenticate(cctx, email, password)
	if err != nil {
		return err
	}

	m.adopt(session)
	return nil
}

// SignUp creates an account. A provider that withholds the session (pending
// email confirmation) leaves the manager Unauthenticated; callers re-check
// AuthStatus after a nil return.
func (m *Manager) SignUp(ctx context.Context, email, password string) error {
	cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	session, err := m.identity.CreateAccount(cctx, email, password)
	if err != nil {
		return err
	}
	if !session.Valid() {
		return nil
	}

	m.adopt(session)
	return nil
}

// SignOut clears local state unconditionally, then revokes the session
// remotely. A remote failure is reported but never resurrects the session:
// the user asked to leave and the UI must not look signed in.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	if m.status == model.StatusUnauthenticated {
		m.mu.Unlock()
		return nil
	}
	session := m.session
	m.clearLocked()
	m.mu.Unlock()

	m.emit(model.AuthEvent{Status: model.StatusUnauthenticated})

	cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	if err := m.identity.SignOut(cctx, session); err != nil {
		m.logger.Error("remote sign-out failed", "error", err)
		return &model.AuthError{Message: err.Error()}
	}
	return nil
}

// AuthStatus returns the current state.
func (m *Manager) AuthStatus() model.AuthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// CurrentProfile projects the live session's user, or nil when
// Unauthenticated.
func (m *Manager) CurrentProfile() *model.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == model.StatusUnauthenticated {
		return nil
	}
	profile := m.session.User.Profile()
	return &profile
}

// CurrentUserID returns the authenticated user's id.
func (m *Manager) CurrentUserID() (uuid.UUID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == model.StatusUnauthenticated {
		return uuid.Nil, false
	}
	return m.session.User.ID, true
}

// UpdateProfileImage commits a new profile image URL to the user's metadata
// and applies the updated user to the live session before returning, so no
// stale read is possible after a successful commit.
func (m *Manager) UpdateProfileImage(ctx context.Context, url string) error {
	m.mu.Lock()
	if m.status == model.StatusUnauthenticated {
		m.mu.Unlock()
		return model.ErrNotAuthenticated
	}
	session := m.session
	m.mu.Unlock()

	cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	user, err := m.identity.UpdateUserMetadata(cctx, session, model.UserMetadata{ProfileImageURL: &url})
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.status == model.StatusUnauthenticated {
		// Signed out while the commit was in flight; the metadata update
		// stands server-side but there is no session to project it into.
		m.mu.Unlock()
		return nil
	}
	m.session.User = user
	profile := user.Profile()
	m.persistLocked()
	m.mu.Unlock()

	m.emit(model.AuthEvent{Status: model.StatusAuthenticated, Profile: &profile})
	return nil
}

// ReloadProfile re-reads the user behind the live session from the provider
// and refreshes the projected profile, picking up changes made elsewhere.
func (m *Manager) ReloadProfile(ctx context.Context) (*model.UserProfile, error) {
	m.mu.Lock()
	if m.status == model.StatusUnauthenticated {
		m.mu.Unlock()
		return nil, model.ErrNotAuthenticated
	}
	session := m.session
	m.mu.Unlock()

	cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	user, err := m.identity.GetUser(cctx, session)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.status == model.StatusUnauthenticated {
		// Signed out while the read was in flight.
		m.mu.Unlock()
		return nil, model.ErrNotAuthenticated
	}
	m.session.User = user
	profile := user.Profile()
	m.persistLocked()
	m.mu.Unlock()

	return &profile, nil
}

// Subscribe registers a session-change listener. The returned cancel closes
// the channel and releases the subscription.
func (m *Manager) Subscribe() (<-chan model.AuthEvent, func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan model.AuthEvent, 8)
	m.subs[id] = ch

	return ch, func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		if c, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(c)
		}
	}
}

// Close releases the lifecycle subscription, stops the scheduler, and closes
// all event channels. The manager is not reusable afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.unbind != nil {
		m.unbind()
		m.unbind = nil
	}
	m.stopRefreshLocked()
	m.mu.Unlock()

	m.subMu.Lock()
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
	m.subMu.Unlock()
}

func (m *Manager) handleAppState(state model.AppState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.foreground = state == model.StateForeground
	if m.foreground {
		if m.status != model.StatusUnauthenticated {
			m.startRefreshLocked()
		}
	} else {
		m.stopRefreshLocked()
	}
}

// adopt installs a fresh session and moves to Authenticated.
func (m *Manager) adopt(session model.Session) {
	m.mu.Lock()
	m.session = session
	m.status = model.StatusAuthenticated
	if m.foreground {
		m.startRefreshLocked()
	}
	profile := session.User.Profile()
	m.persistLocked()
	m.mu.Unlock()

	m.emit(model.AuthEvent{Status: model.StatusAuthenticated, Profile: &profile})
}

// startRefreshLocked activates the scheduler. Idempotent: repeated foreground
// events while a scheduler is live are no-ops, so exactly one exists.
func (m *Manager) startRefreshLocked() {
	if m.cancelRefresh != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelRefresh = cancel
	go m.refreshLoop(ctx)
	m.logger.Debug("refresh scheduler started", "interval", m.refreshInterval)
}

func (m *Manager) stopRefreshLocked() {
	if m.cancelRefresh != nil {
		m.cancelRefresh()
		m.cancelRefresh = nil
		m.logger.Debug("refresh scheduler stopped")
	}
}

func (m *Manager) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(m.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.refreshOnce(ctx)
		}
	}
}

func (m *Manager) refreshOnce(ctx context.Context) {
	m.mu.Lock()
	if m.status != model.StatusAuthenticated {
		m.mu.Unlock()
		return
	}
	m.status = model.StatusRefreshing
	session := m.session
	m.mu.Unlock()

	cctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	renewed, err := m.identity.Refresh(cctx, session)

	m.mu.Lock()
	if m.status != model.StatusRefreshing {
		// Signed out while the refresh was in flight; drop the result.
		m.mu.Unlock()
		return
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// The scheduler was stopped mid-flight (background or shutdown).
			// The session is still valid; the next foreground retries.
			m.status = model.StatusAuthenticated
			m.mu.Unlock()
			return
		}
		m.logger.Info("session refresh failed, signing out", "error", err)
		m.clearLocked()
		m.mu.Unlock()
		m.emit(model.AuthEvent{Status: model.StatusUnauthenticated, Err: model.ErrSessionExpired})
		return
	}
	m.session = renewed
	m.status = model.StatusAuthenticated
	profile := renewed.User.Profile()
	m.persistLocked()
	m.mu.Unlock()

	m.emit(model.AuthEvent{Status: model.StatusAuthenticated, Profile: &profile})
}

// clearLocked discards the session, stops the scheduler and wipes the
// persisted snapshot. Callers hold m.mu.
func (m *Manager) clearLocked() {
	m.session = model.Session{}
	m.status = model.StatusUnauthenticated
	m.stopRefreshLocked()

	ctx, cancel := context.WithTimeout(context.Background(), m.callTimeout)
	defer cancel()
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error("failed to clear persisted session", "error", err)
	}
}

// persistLocked saves the live session snapshot. Persistence failures are
// logged, not surfaced: the in-memory session stays authoritative.
func (m *Manager) persistLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), m.callTimeout)
	defer cancel()
	if err := m.store.Save(ctx, m.session); err != nil {
		m.logger.Error("failed to persist session", "error", err)
	}
}

func (m *Manager) emit(event model.AuthEvent) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- event:
		default:
			// Slow subscriber; drop rather than block state transitions.
		}
	}
}
