package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/client"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/repositories/session"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/token"
	"github.com/sabastianrafa/powergym-ag-system/internal/logging"
)

// InvalidTokenMessage is returned when the server hands out a token the
// console cannot decode.
const InvalidTokenMessage = "Invalid token received"

type EventKind int

const (
	EventLogin EventKind = iota + 1
	EventLogout
	EventExpired
)

func (k EventKind) String() string {
	switch k {
	case EventLogin:
		return "login"
	case EventLogout:
		return "logout"
	case EventExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a session transition. Identity
// is the one that signed in (login) or the one that was dropped.
type Event struct {
	Kind     EventKind
	Identity models.Identity
}

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
}

type subscriber struct {
	id int
	fn func(Event)
}

// SessionManager holds the credential and identity of the current scope.
// It is safe for concurrent use.
type SessionManager struct {
	auth  Authenticator
	store session.Store
	log   logging.Logger

	mu           sync.RWMutex
	token        string
	identity     *models.Identity
	initializing bool

	subMu  sync.Mutex
	subs   []subscriber
	nextID int
}

var _ client.Session = (*SessionManager)(nil)

// NewSessionManager returns a manager in the initializing state. Call
// Initialize before consulting it.
func NewSessionManager(auth Authenticator, store session.Store, log logging.Logger) *SessionManager {
	if log == nil {
		log = logging.Nop()
	}
	return &SessionManager{
		auth:         auth,
		store:        store,
		log:          log.With("component", "session"),
		initializing: true,
	}
}

// Initialize restores the persisted credential. A token that does not
// decode is purged. It always leaves the initializing state, even when
// the store cannot be read.
func (m *SessionManager) Initialize(ctx context.Context) error {
	defer func() {
		m.mu.Lock()
		m.initializing = false
		m.mu.Unlock()
	}()

	raw, err := m.store.Load(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to restore session", "error", err)
		return err
	}
	if raw == "" {
		return nil
	}

	id, ok := token.Decode(raw)
	if !ok {
		m.log.Warn(ctx, "stored token is not decodable, purging")
		if err := m.store.Clear(ctx); err != nil {
			m.log.Error(ctx, "failed to purge session", "error", err)
		}
		return nil
	}

	m.mu.Lock()
	m.token = raw
	m.identity = &id
	m.mu.Unlock()

	m.log.Info(ctx, "session restored", "user", id.Email, "role", id.Role)
	return nil
}

// Login authenticates against the API and, on success, persists the token
// and replaces the current identity. Rejections come back as
// *client.AuthError.
func (m *SessionManager) Login(ctx context.Context, email, password string) (models.Identity, error) {
	resp, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return models.Identity{}, err
	}

	id, ok := token.Decode(resp.AccessToken)
	if !ok {
		m.log.Warn(ctx, "login returned an undecodable token")
		return models.Identity{}, &client.AuthError{Message: InvalidTokenMessage}
	}

	if err := m.store.Save(ctx, resp.AccessToken); err != nil {
		return models.Identity{}, fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.token = resp.AccessToken
	m.identity = &id
	m.mu.Unlock()

	m.log.Info(ctx, "logged in", "user", id.Email, "role", id.Role)
	m.publish(Event{Kind: EventLogin, Identity: id})
	return id, nil
}

// Logout drops the credential locally. The server is not contacted.
func (m *SessionManager) Logout(ctx context.Context) error {
	prev := m.drop()

	err := m.store.Clear(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to clear session", "error", err)
		err = fmt.Errorf("failed to clear session: %w", err)
	}

	if prev != nil {
		m.log.Info(ctx, "logged out", "user", prev.Email)
		m.publish(Event{Kind: EventLogout, Identity: *prev})
	}
	return err
}

// Expire drops the credential after the API rejected token. A rejection of
// a token that is no longer current (the operator signed in again while
// the request was in flight) is ignored. Subscribers get a single
// EventExpired per signed-in session, however many requests failed.
func (m *SessionManager) Expire(ctx context.Context, token string) {
	prev := m.dropToken(token)
	if prev == nil {
		m.log.Debug(ctx, "ignoring rejection of a stale token")
		return
	}

	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear session", "error", err)
	}
	m.log.Warn(ctx, "session expired", "user", prev.Email)
	m.publish(Event{Kind: EventExpired, Identity: *prev})
}

// dropToken is drop restricted to the case where token is still current.
func (m *SessionManager) dropToken(token string) *models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token == "" || token != m.token {
		return nil
	}
	prev := m.identity
	m.token = ""
	m.identity = nil
	return prev
}

// drop clears the in-memory credential and returns the identity that held
// it, or nil if there was none.
func (m *SessionManager) drop() *models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.identity
	m.token = ""
	m.identity = nil
	return prev
}

func (m *SessionManager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *SessionManager) Identity() (models.Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return models.Identity{}, false
	}
	return *m.identity, true
}

func (m *SessionManager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity != nil
}

func (m *SessionManager) IsInitializing() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initializing
}

// State returns a consistent snapshot for route decisions.
func (m *SessionManager) State() models.SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st := models.SessionState{Initializing: m.initializing}
	if m.identity != nil {
		id := *m.identity
		st.Identity = &id
	}
	return st
}

// Subscribe registers fn for session events and returns a function that
// removes it. Callbacks run synchronously, in subscription order, outside
// of any session lock.
func (m *SessionManager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subMu.Lock()
			defer m.subMu.Unlock()
			for i, s := range m.subs {
				if s.id == id {
					m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (m *SessionManager) publish(ev Event) {
	m.subMu.Lock()
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	m.subMu.Unlock()

	for _, s := range subs {
		s.fn(ev)
	}
}
