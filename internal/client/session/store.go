package session

import (
	"context"
	"log/slog"
	"sync"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrNoRefreshToken = errs.New("no refresh token stored")

// API is the slice of *apiclient.Client the store calls.
type API interface {
	Register(ctx context.Context, req apiclient.SignUpRequest) (*apiclient.User, error)
	Login(ctx context.Context, req apiclient.SignInRequest) (*apiclient.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*apiclient.Session, error)
	Logout(ctx context.Context) error
	MyBusiness(ctx context.Context) (*apiclient.Business, error)
}

// Store is the current identity. It is safe for concurrent use.
//
// Every change of identity bumps a generation counter. Business profile
// fetches capture the generation they started under and drop their result
// if it moved, so a sign-out always wins over a slow fetch.
type Store struct {
	api     API
	storage Storage
	logger  *slog.Logger

	mu         sync.RWMutex
	user       *apiclient.User
	business   *apiclient.Business
	generation uint64
	cancelBiz  context.CancelFunc
	listeners  []func()

	loading   bool
	ready     chan struct{}
	readyOnce sync.Once
}

func NewStore(api API, storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		api:     api,
		storage: storage,
		logger:  logger,
		loading: true,
		ready:   make(chan struct{}),
	}
}

// Hydrate restores the persisted session. Until it returns, Loading reports
// true and WaitReady blocks.
func (s *Store) Hydrate(ctx context.Context) error {
	defer s.markReady()

	st, err := s.storage.Load()
	if err != nil {
		return errs.Wrap(err, "load session")
	}
	if !st.valid() {
		return nil
	}
	gen := s.replaceIdentity(st.User)
	if st.User.IsBusiness() {
		s.loadBusiness(ctx, gen)
	}
	return nil
}

func (s *Store) markReady() {
	s.readyOnce.Do(func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		close(s.ready)
	})
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SignUp registers an account. It does not start a session.
func (s *Store) SignUp(ctx context.Context, email, password, displayName, role string) error {
	_, err := s.api.Register(ctx, apiclient.SignUpRequest{
		Email:    email,
		Password: password,
		Name:     displayName,
		Role:     role,
	})
	return err
}

func (s *Store) SignIn(ctx context.Context, email, password string) (*apiclient.User, error) {
	sess, err := s.api.Login(ctx, apiclient.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := s.adopt(ctx, sess); err != nil {
		return nil, err
	}
	return sess.User, nil
}

// SignOut forgets the session locally. The server call only clears cookies,
// so its failure is logged and ignored.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.logger.DebugContext(ctx, "logout request failed", "error", err.Error())
	}

	s.mu.Lock()
	s.stopBusinessFetch()
	s.generation++
	s.user = nil
	s.business = nil
	s.mu.Unlock()

	err := s.storage.Clear()
	s.notify()
	return err
}

// UpdateToken swaps in a new access token and user, keeping the stored
// refresh token. Used after a role change such as business registration.
func (s *Store) UpdateToken(ctx context.Context, token string, user *apiclient.User) error {
	refresh := ""
	if st, err := s.storage.Load(); err == nil && st != nil {
		refresh = st.RefreshToken
	}
	return s.adopt(ctx, &apiclient.Session{Token: token, RefreshToken: refresh, User: user})
}

// UpdateSession is UpdateToken for responses that also carry a refresh token.
func (s *Store) UpdateSession(ctx context.Context, sess *apiclient.Session) error {
	if sess.RefreshToken == "" {
		return s.UpdateToken(ctx, sess.Token, sess.User)
	}
	return s.adopt(ctx, sess)
}

func (s *Store) Refresh(ctx context.Context) error {
	st, err := s.storage.Load()
	if err != nil {
		return errs.Wrap(err, "load session")
	}
	if st == nil || st.RefreshToken == "" {
		return ErrNoRefreshToken
	}
	sess, err := s.api.Refresh(ctx, st.RefreshToken)
	if err != nil {
		return err
	}
	return s.adopt(ctx, sess)
}

// adopt persists first: the API client reads the token from storage, and the
// business fetch below must already be authenticated.
func (s *Store) adopt(ctx context.Context, sess *apiclient.Session) error {
	if sess == nil || sess.Token == "" || sess.User == nil {
		return errs.New("incomplete session in response")
	}
	if err := s.storage.Save(&State{Token: sess.Token, RefreshToken: sess.RefreshToken, User: sess.User}); err != nil {
		return errs.Wrap(err, "persist session")
	}
	gen := s.replaceIdentity(sess.User)
	if sess.User.IsBusiness() {
		s.loadBusiness(ctx, gen)
	}
	s.notify()
	return nil
}

func (s *Store) replaceIdentity(u *apiclient.User) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopBusinessFetch()
	s.generation++
	s.user = u
	s.business = nil
	return s.generation
}

// stopBusinessFetch requires s.mu.
func (s *Store) stopBusinessFetch() {
	if s.cancelBiz != nil {
		s.cancelBiz()
		s.cancelBiz = nil
	}
}

func (s *Store) loadBusiness(ctx context.Context, gen uint64) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return
	}
	s.cancelBiz = cancel
	s.mu.Unlock()

	b, err := s.api.MyBusiness(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		s.logger.DebugContext(ctx, "discarding business profile from a previous session")
		return
	}
	s.cancelBiz = nil
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load business profile", "error", err.Error())
		return
	}
	s.business = b
}

// Subscribe registers fn to run after every identity change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.mu.RLock()
	fns := append([]func(){}, s.listeners...)
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

func (s *Store) User() *apiclient.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) Business() *apiclient.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.business
}

func (s *Store) UserID() (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return uuid.Nil, false
	}
	return s.user.ID, true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.UserID()
	return ok
}

func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
