// Package session holds the single source of truth, within the client
// process, for who is logged in and with what credential. The credential is
// an opaque bearer token issued by the backend; the store is its only
// writer, every other component reads it through a snapshot.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/apotekhub/storefront/internal/api"
	"github.com/apotekhub/storefront/internal/logging"
	"github.com/apotekhub/storefront/internal/models"
	"github.com/apotekhub/storefront/internal/store"
)

// Storage keys for the persisted credential and the cached identity
// snapshot. Both are written and cleared together.
const (
	KeyToken = "current_token"
	KeyUser  = "current_user"
)

// State is the session lifecycle phase.
type State int

const (
	// StateLoading means a persisted credential is being resolved against
	// the backend. No restricted view may render while loading.
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot is a point-in-time read of the session, safe to evaluate
// synchronously (the access guard works on snapshots only).
type Snapshot struct {
	State      State
	Identity   *models.User
	Credential string
}

// Resolver is the slice of the backend API the store needs: exchanging a
// stored credential for the current identity.
type Resolver interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// Store owns the credential and identity for the lifetime of the process.
type Store struct {
	repo store.Repository
	api  Resolver
	log  logging.Logger

	mu         sync.RWMutex
	state      State
	identity   *models.User
	credential string
	subs       []func(Snapshot)
}

func New(repo store.Repository, resolver Resolver, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{repo: repo, api: resolver, log: log, state: StateLoading}
}

// Initialize reads the persisted credential and resolves the identity
// against the backend. It always terminates the Loading state:
//
//   - no stored credential: Anonymous
//   - resolution succeeds: Authenticated, cached snapshot refreshed
//   - authorization rejected: stored credential deleted, Anonymous
//   - any other failure: Anonymous; the credential stays on disk because it
//     is not proven invalid, but the in-memory session is unusable until a
//     later successful resolution
func (s *Store) Initialize(ctx context.Context) error {
	token, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		s.become(StateAnonymous, nil, "")
		return fmt.Errorf("read stored credential: %w", err)
	}
	if len(token) == 0 {
		s.become(StateAnonymous, nil, "")
		return nil
	}

	// Advisory only: readable while resolution is in flight, never trusted
	// as the resolved identity. The state stays Loading, so the guard still
	// denies every restricted view.
	var cached *models.User
	if b, err := s.repo.Get(ctx, KeyUser); err == nil && len(b) > 0 {
		var u models.User
		if err := json.Unmarshal(b, &u); err != nil {
			s.log.Warn(ctx, "discarding corrupt identity snapshot", "error", err)
		} else {
			cached = &u
		}
	}

	// Expose the credential so the resolver call goes out authenticated.
	s.mu.Lock()
	s.credential = string(token)
	s.identity = cached
	s.mu.Unlock()

	user, err := s.api.CurrentUser(ctx)
	switch {
	case err == nil:
		if b, err := json.Marshal(user); err == nil {
			if err := s.repo.Set(ctx, KeyUser, b); err != nil {
				s.log.Warn(ctx, "failed to refresh identity snapshot", "error", err)
			}
		}
		s.become(StateAuthenticated, user, string(token))
		return nil

	case errors.Is(err, api.ErrUnauthorized):
		// Fatal for this credential; no retry.
		if err := s.repo.Clear(ctx); err != nil {
			s.log.Error(ctx, "failed to clear rejected session", "error", err)
		}
		s.become(StateAnonymous, nil, "")
		return nil

	default:
		// Indeterminate: keep the token on disk, drop it from memory.
		s.log.Warn(ctx, "identity resolution failed, continuing anonymously", "error", err)
		s.become(StateAnonymous, nil, "")
		return nil
	}
}

// SetSession installs a fresh credential and identity after a successful
// login, persisting both atomically.
func (s *Store) SetSession(ctx context.Context, credential string, identity *models.User) error {
	b, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity snapshot: %w", err)
	}
	if err := s.repo.SetAll(ctx, map[string][]byte{
		KeyToken: []byte(credential),
		KeyUser:  b,
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.become(StateAuthenticated, identity, credential)
	return nil
}

// Clear removes the persisted credential and identity together and drops
// the in-memory session. Used on logout and on authorization rejection.
func (s *Store) Clear(ctx context.Context) error {
	err := s.repo.Clear(ctx)
	s.become(StateAnonymous, nil, "")
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// HandleAuthRejected is the transport hook for 401 responses anywhere in
// the authenticated surface.
func (s *Store) HandleAuthRejected() {
	if s.State() == StateAnonymous {
		return
	}
	ctx := context.Background()
	s.log.Info(ctx, "credential rejected by backend, clearing session")
	if err := s.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear session after rejection", "error", err)
	}
}

// Snapshot returns the current session state for synchronous evaluation.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{State: s.state, Identity: s.identity, Credential: s.credential}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Credential is the token source for the API client.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

func (s *Store) Identity() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Subscribe registers fn to run after every state transition with the new
// snapshot. Subscribers must not call back into the store.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) become(state State, identity *models.User, credential string) {
	s.mu.Lock()
	s.state = state
	s.identity = identity
	s.credential = credential
	snap := Snapshot{State: state, Identity: identity, Credential: credential}
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
