package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"arto/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryStore backs the in-memory repositories. Records are copied on the
// way in and out so callers never share state with the store.
type memoryStore struct {
	// txMu is held exclusively by a running transaction. Calls made outside
	// a transaction take it too, so they wait for the commit or rollback.
	txMu sync.RWMutex
	mu   sync.RWMutex

	users          map[uuid.UUID]entity.User
	sessions       map[uuid.UUID]entity.Session
	userProfiles   map[uuid.UUID]entity.UserProfile
	artistProfiles map[uuid.UUID]entity.ArtistProfile

	// seq breaks created_at ties so listings stay in insertion order.
	seq    int64
	orders map[uuid.UUID]int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:          make(map[uuid.UUID]entity.User),
		sessions:       make(map[uuid.UUID]entity.Session),
		userProfiles:   make(map[uuid.UUID]entity.UserProfile),
		artistProfiles: make(map[uuid.UUID]entity.ArtistProfile),
		orders:         make(map[uuid.UUID]int64),
	}
}

type memorySnapshot struct {
	users          map[uuid.UUID]entity.User
	sessions       map[uuid.UUID]entity.Session
	userProfiles   map[uuid.UUID]entity.UserProfile
	artistProfiles map[uuid.UUID]entity.ArtistProfile
	seq            int64
	orders         map[uuid.UUID]int64
}

func (s *memoryStore) snapshot() memorySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return memorySnapshot{
		users:          cloneMap(s.users),
		sessions:       cloneMap(s.sessions),
		userProfiles:   cloneMap(s.userProfiles),
		artistProfiles: cloneMap(s.artistProfiles),
		seq:            s.seq,
		orders:         cloneMap(s.orders),
	}
}

func (s *memoryStore) restore(snap memorySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.sessions = snap.sessions
	s.userProfiles = snap.userProfiles
	s.artistProfiles = snap.artistProfiles
	s.seq = snap.seq
	s.orders = snap.orders
}

// lock takes the write locks for one repository call and returns the
// release func. Calls bound to a transaction already hold txMu.
func (s *memoryStore) lock(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

func (s *memoryStore) rlock(inTx bool) func() {
	if !inTx {
		s.txMu.RLock()
	}
	s.mu.RLock()
	return func() {
		s.mu.RUnlock()
		if !inTx {
			s.txMu.RUnlock()
		}
	}
}

func (s *memoryStore) nextSeq(id uuid.UUID) {
	s.seq++
	s.orders[id] = s.seq
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// NewMemoryRepository returns a Repository held entirely in process memory.
// It is used when DB_DRIVER=memory and by tests.
func NewMemoryRepository(log *zap.Logger) *Repository {
	store := newMemoryStore()
	repo := &Repository{
		User:          &memoryUserRepository{store: store},
		Session:       &memorySessionRepository{store: store},
		UserProfile:   &memoryUserProfileRepository{store: store},
		ArtistProfile: &memoryArtistProfileRepository{store: store},
	}
	repo.Tx = &memoryTransactor{
		store: store,
		repo:  repo,
		log:   log.With(zap.String("repository", "tx")),
	}
	return repo
}

// memoryTransactor serializes units of work and restores a snapshot when
// fn fails. Other repository calls block until the transaction ends, so a
// rollback never drops their writes and they never read uncommitted state.
// fn sees the live Repository, so fields swapped on it after construction
// are honoured inside transactions too.
type memoryTransactor struct {
	store *memoryStore
	repo  *Repository
	log   *zap.Logger
}

func (t *memoryTransactor) WithinTx(ctx context.Context, fn func(repo *Repository) error) (err error) {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	snap := t.store.snapshot()
	defer func() {
		if p := recover(); p != nil {
			t.store.restore(snap)
			panic(p)
		}
		if err != nil {
			t.log.Debug("Rolling back in-memory transaction", zap.Error(err))
			t.store.restore(snap)
		}
	}()

	txRepo := bindMemoryTx(*t.repo)
	txRepo.Tx = joinedTx{repo: &txRepo}

	if err = ctx.Err(); err != nil {
		return err
	}
	return fn(&txRepo)
}

// bindMemoryTx swaps the memory repositories in repo for copies that run
// under the transaction's lock. Other implementations are kept as they are.
func bindMemoryTx(repo Repository) Repository {
	if r, ok := repo.User.(*memoryUserRepository); ok {
		repo.User = &memoryUserRepository{store: r.store, inTx: true}
	}
	if r, ok := repo.Session.(*memorySessionRepository); ok {
		repo.Session = &memorySessionRepository{store: r.store, inTx: true}
	}
	if r, ok := repo.UserProfile.(*memoryUserProfileRepository); ok {
		repo.UserProfile = &memoryUserProfileRepository{store: r.store, inTx: true}
	}
	if r, ok := repo.ArtistProfile.(*memoryArtistProfileRepository); ok {
		repo.ArtistProfile = &memoryArtistProfileRepository{store: r.store, inTx: true}
	}
	return repo
}

type memoryUserRepository struct {
	store *memoryStore
	inTx  bool
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	defer r.store.lock(r.inTx)()

	for _, existing := range r.store.users {
		if existing.Username == user.Username {
			return fmt.Errorf("create user %s: %w", user.Username, ErrDuplicate)
		}
	}
	r.store.users[user.ID] = *user
	r.store.nextSeq(user.ID)
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	defer r.store.rlock(r.inTx)()

	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	defer r.store.rlock(r.inTx)()

	for _, user := range r.store.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	defer r.store.lock(r.inTx)()

	user, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	user.LastLogin = &at
	r.store.users[id] = user
	return nil
}

type memorySessionRepository struct {
	store *memoryStore
	inTx  bool
}

func (r *memorySessionRepository) Create(_ context.Context, session *entity.Session) error {
	defer r.store.lock(r.inTx)()

	r.store.sessions[session.Token] = *session
	return nil
}

func (r *memorySessionRepository) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	defer r.store.rlock(r.inTx)()

	session, ok := r.store.sessions[token]
	if !ok || !session.Valid(time.Now()) {
		return nil, nil
	}
	return &session, nil
}

func (r *memorySessionRepository) Revoke(_ context.Context, token uuid.UUID) error {
	defer r.store.lock(r.inTx)()

	session, ok := r.store.sessions[token]
	if !ok || session.RevokedAt != nil {
		return nil
	}
	now := time.Now()
	session.RevokedAt = &now
	r.store.sessions[token] = session
	return nil
}

func (r *memorySessionRepository) CleanExpiredSessions(_ context.Context) (int64, error) {
	defer r.store.lock(r.inTx)()

	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	var removed int64
	for token, session := range r.store.sessions {
		expired := session.ExpiresAt.Before(cutoff)
		revoked := session.RevokedAt != nil && session.RevokedAt.Before(cutoff)
		if expired || revoked {
			delete(r.store.sessions, token)
			removed++
		}
	}
	return removed, nil
}

type memoryUserProfileRepository struct {
	store *memoryStore
	inTx  bool
}

func (r *memoryUserProfileRepository) Create(_ context.Context, profile *entity.UserProfile) error {
	defer r.store.lock(r.inTx)()

	for _, existing := range r.store.userProfiles {
		if existing.UserID == profile.UserID {
			return fmt.Errorf("create user profile for %s: %w", profile.UserID.String(), ErrDuplicate)
		}
	}
	r.store.userProfiles[profile.ID] = *profile
	return nil
}

func (r *memoryUserProfileRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	defer r.store.rlock(r.inTx)()

	for _, profile := range r.store.userProfiles {
		if profile.UserID == userID {
			return &profile, nil
		}
	}
	return nil, nil
}

func (r *memoryUserProfileRepository) Update(_ context.Context, profile *entity.UserProfile) error {
	defer r.store.lock(r.inTx)()

	if _, ok := r.store.userProfiles[profile.ID]; !ok {
		return fmt.Errorf("user profile %s not found", profile.ID.String())
	}
	r.store.userProfiles[profile.ID] = *profile
	return nil
}

type memoryArtistProfileRepository struct {
	store *memoryStore
	inTx  bool
}

func (r *memoryArtistProfileRepository) Create(_ context.Context, profile *entity.ArtistProfile) error {
	defer r.store.lock(r.inTx)()

	for _, existing := range r.store.artistProfiles {
		if existing.UserID == profile.UserID {
			return fmt.Errorf("create artist profile for %s: %w", profile.UserID.String(), ErrDuplicate)
		}
	}
	r.store.artistProfiles[profile.ID] = *profile
	r.store.nextSeq(profile.ID)
	return nil
}

func (r *memoryArtistProfileRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.ArtistProfile, error) {
	defer r.store.rlock(r.inTx)()

	profile, ok := r.store.artistProfiles[id]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (r *memoryArtistProfileRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.ArtistProfile, error) {
	defer r.store.rlock(r.inTx)()

	for _, profile := range r.store.artistProfiles {
		if profile.UserID == userID {
			return &profile, nil
		}
	}
	return nil, nil
}

func (r *memoryArtistProfileRepository) FindAll(_ context.Context, specialty *entity.Specialty) ([]*entity.ArtistProfile, error) {
	return r.list(func(p *entity.ArtistProfile) bool {
		return specialty == nil || p.Specialty == *specialty
	}, 0), nil
}

func (r *memoryArtistProfileRepository) FindVerified(_ context.Context, limit int) ([]*entity.ArtistProfile, error) {
	return r.list(func(p *entity.ArtistProfile) bool {
		return p.IsVerified
	}, limit), nil
}

// list returns matching profiles newest first; limit <= 0 means no limit.
func (r *memoryArtistProfileRepository) list(match func(*entity.ArtistProfile) bool, limit int) []*entity.ArtistProfile {
	defer r.store.rlock(r.inTx)()

	var profiles []*entity.ArtistProfile
	for _, profile := range r.store.artistProfiles {
		p := profile
		if match(&p) {
			profiles = append(profiles, &p)
		}
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := profiles[i], profiles[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return r.store.orders[a.ID] > r.store.orders[b.ID]
	})

	if limit > 0 && len(profiles) > limit {
		profiles = profiles[:limit]
	}
	return profiles
}

func (r *memoryArtistProfileRepository) Update(_ context.Context, profile *entity.ArtistProfile) error {
	defer r.store.lock(r.inTx)()

	existing, ok := r.store.artistProfiles[profile.ID]
	if !ok {
		return fmt.Errorf("artist profile %s not found", profile.ID.String())
	}
	updated := *profile
	updated.UserID = existing.UserID
	updated.IsVerified = existing.IsVerified
	updated.CreatedAt = existing.CreatedAt
	r.store.artistProfiles[profile.ID] = updated
	return nil
}

func (r *memoryArtistProfileRepository) SetVerified(_ context.Context, id uuid.UUID, verified bool) error {
	defer r.store.lock(r.inTx)()

	profile, ok := r.store.artistProfiles[id]
	if !ok {
		return fmt.Errorf("artist profile %s not found", id.String())
	}
	profile.IsVerified = verified
	profile.UpdatedAt = time.Now()
	r.store.artistProfiles[id] = profile
	return nil
}
