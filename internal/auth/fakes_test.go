package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/tienda/internal/cache"
	"github.com/dropDatabas3/tienda/internal/domain/repository"
)

// fakeUserRepo es un repositorio de usuarios en memoria para tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*repository.User // por id

	failCreate error // si no es nil, CreateWithStore falla tras validar
	lookupErr  error // si no es nil, GetByLogin/GetByID fallan
	storeIDs   map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[string]*repository.User),
		storeIDs: make(map[string]string),
	}
}

func (f *fakeUserRepo) CreateWithStore(_ context.Context, input repository.CreateUserInput, storeID string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == input.Username || u.Email == input.Email {
			return nil, repository.ErrConflict
		}
	}
	if f.failCreate != nil {
		// Simula el fallo a mitad de transacción: nada queda escrito.
		return nil, f.failCreate
	}
	now := time.Now()
	u := &repository.User{
		ID:           input.ID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Phone:        input.Phone,
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users[u.ID] = u
	f.storeIDs[u.ID] = storeID
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByLogin(_ context.Context, identifier string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	identifier = strings.ToLower(identifier)
	for _, u := range f.users {
		if u.DeletedAt != nil {
			continue
		}
		if u.Username == identifier || u.Email == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) SoftDelete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

// fakeSessionRepo es un repositorio de sesiones en memoria con contadores
// de acceso, para verificar qué tier respondió cada lectura.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*repository.Session

	getByIDCalls int
	createCalls  int
	deleteCalls  int

	createErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*repository.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, input repository.CreateSessionInput) (*repository.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	s := &repository.Session{
		ID:        input.ID,
		UserID:    input.UserID,
		Token:     input.Token,
		CreatedAt: time.Now(),
		ExpiresAt: input.ExpiresAt,
	}
	f.sessions[s.ID] = s
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (*repository.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getByIDCalls++
	s, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) GetByToken(_ context.Context, token string) (*repository.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.Token == token {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	now := time.Now()
	for id, s := range f.sessions {
		if s.Expired(now) {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

// flakyCache envuelve un cache real e inyecta fallos en Set/Get.
type flakyCache struct {
	cache.Client
	setErr error
	getErr error
}

func (f *flakyCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Client.Set(ctx, key, value, ttl)
}

func (f *flakyCache) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.Client.Get(ctx, key)
}
