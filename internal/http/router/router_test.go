package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authsvc "github.com/dropDatabas3/tienda/internal/auth"
	"github.com/dropDatabas3/tienda/internal/cache"
	"github.com/dropDatabas3/tienda/internal/domain/repository"
	authctrl "github.com/dropDatabas3/tienda/internal/http/controllers/auth"
	mw "github.com/dropDatabas3/tienda/internal/http/middlewares"
)

// memStore es un backend en memoria que implementa los cuatro repositorios
// de dominio, suficiente para ejercitar la superficie HTTP completa.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*repository.User
	stores   map[string]*repository.Store // por id
	sessions map[string]*repository.Session
	products map[string]*repository.Product
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*repository.User),
		stores:   make(map[string]*repository.Store),
		sessions: make(map[string]*repository.Session),
		products: make(map[string]*repository.Product),
	}
}

// --- repository.UserRepository ---

func (m *memStore) CreateWithStore(_ context.Context, input repository.CreateUserInput, storeID string) (*repository.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == input.Username || u.Email == input.Email {
			return nil, repository.ErrConflict
		}
	}
	now := time.Now()
	u := &repository.User{
		ID: input.ID, Username: input.Username, Email: input.Email,
		PasswordHash: input.PasswordHash, Phone: input.Phone, Role: input.Role,
		CreatedAt: now, UpdatedAt: now,
	}
	m.users[u.ID] = u
	m.stores[storeID] = &repository.Store{ID: storeID, OwnerID: u.ID, CreatedAt: now, UpdatedAt: now}
	return u, nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*repository.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetByLogin(_ context.Context, identifier string) (*repository.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identifier = strings.ToLower(identifier)
	for _, u := range m.users {
		if u.DeletedAt == nil && (u.Username == identifier || u.Email == identifier) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

// --- repository.SessionRepository ---

func (m *memStore) Create(_ context.Context, input repository.CreateSessionInput) (*repository.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &repository.Session{
		ID: input.ID, UserID: input.UserID, Token: input.Token,
		CreatedAt: time.Now(), ExpiresAt: input.ExpiresAt,
	}
	m.sessions[s.ID] = s
	cp := *s
	return &cp, nil
}

func (m *memStore) GetSessionByID(_ context.Context, id string) (*repository.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) GetByToken(_ context.Context, token string) (*repository.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Token == token {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memStore) DeleteExpired(_ context.Context) (int, error) { return 0, nil }

// sessionRepoView adapta memStore a repository.SessionRepository (GetByID
// colisiona entre usuarios y sesiones).
type sessionRepoView struct{ *memStore }

func (v sessionRepoView) GetByID(ctx context.Context, id string) (*repository.Session, error) {
	return v.GetSessionByID(ctx, id)
}

// --- repository.StoreRepository ---

type storeRepoView struct{ *memStore }

func (v storeRepoView) GetByOwner(_ context.Context, ownerID string) (*repository.Store, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, s := range v.stores {
		if s.OwnerID == ownerID && s.DeletedAt == nil {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (v storeRepoView) GetByID(_ context.Context, id string) (*repository.Store, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.stores[id]
	if !ok || s.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

// --- repository.ProductRepository ---

type productRepoView struct{ *memStore }

func (v productRepoView) Create(_ context.Context, input repository.CreateProductInput) (*repository.Product, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	now := time.Now()
	p := &repository.Product{
		ID: input.ID, StoreID: input.StoreID, Title: input.Title,
		Description: input.Description, CreatedAt: now, UpdatedAt: now,
	}
	v.products[p.ID] = p
	cp := *p
	return &cp, nil
}

func (v productRepoView) GetByID(_ context.Context, id string) (*repository.Product, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	p, ok := v.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (v productRepoView) ListByStore(_ context.Context, storeID string, limit, offset int) ([]repository.Product, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []repository.Product
	for _, p := range v.products {
		if p.StoreID == storeID && p.DeletedAt == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (v productRepoView) Delete(_ context.Context, id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if p, ok := v.products[id]; ok && p.DeletedAt == nil {
		now := time.Now()
		p.DeletedAt = &now
	}
	return nil
}

// newTestServer arma el stack completo sobre el backend en memoria.
func newTestServer(t *testing.T) (*httptest.Server, *memStore) {
	t.Helper()
	ms := newMemStore()

	manager := authsvc.NewManager(authsvc.ManagerDeps{
		Sessions: sessionRepoView{ms},
		Cache:    cache.NewMemory("t"),
		Codec:    authsvc.NewCodec("test-secret", "tienda"),
		TTL:      time.Hour,
	})
	service := authsvc.NewService(authsvc.ServiceDeps{
		Users:    ms,
		Verifier: authsvc.NewVerifier(ms),
		Sessions: manager,
		HashCost: 4,
	})

	handler := New(Deps{
		AuthService: service,
		Stores:      storeRepoView{ms},
		Products:    productRepoView{ms},
		AuthConfig:  mw.AuthConfig{CookieName: "jwt", AllowBearer: true},
		Cookie: authctrl.CookieConfig{
			Name: "jwt", SameSite: "lax", TTL: time.Hour,
		},
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, ms
}

func postJSON(t *testing.T, url string, body any, cookies []*http.Cookie) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == "jwt" && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestAPI_RegisterLoginMeLogout(t *testing.T) {
	srv, _ := newTestServer(t)

	// Registro: 201 + cookie de sesión (auto-login).
	resp := postJSON(t, srv.URL+"/v1/auth/register", map[string]string{
		"username": "ana", "email": "ana@example.com", "password": "s3cret-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ck := sessionCookie(t, resp)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	resp.Body.Close()

	// Me con la cookie del registro.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/v1/auth/me", nil)
	req.AddCookie(ck)
	meResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, meResp.StatusCode)
	var me struct {
		User struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	meResp.Body.Close()
	assert.Equal(t, "ana", me.User.Username)
	assert.Equal(t, "regular", me.User.Role)

	// Login con username y con email.
	resp = postJSON(t, srv.URL+"/v1/auth/login", map[string]string{
		"identifier": "ana@example.com", "password": "s3cret-pass",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loginCk := sessionCookie(t, resp)
	resp.Body.Close()

	// Logout: 204 y la cookie queda invalidada.
	resp = postJSON(t, srv.URL+"/v1/auth/logout", nil, []*http.Cookie{loginCk})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/v1/auth/me", nil)
	req.AddCookie(loginCk)
	meResp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, meResp.StatusCode)
	meResp.Body.Close()
}

func TestAPI_Login_InvalidCredentialsAreUniform(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/auth/register", map[string]string{
		"username": "ana", "email": "ana@example.com", "password": "s3cret-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	decode := func(r *http.Response) (int, string) {
		var body struct {
			Code string `json:"code"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		r.Body.Close()
		return r.StatusCode, body.Code
	}

	// Usuario inexistente y password incorrecto responden idéntico.
	s1, c1 := decode(postJSON(t, srv.URL+"/v1/auth/login", map[string]string{
		"identifier": "nadie", "password": "s3cret-pass",
	}, nil))
	s2, c2 := decode(postJSON(t, srv.URL+"/v1/auth/login", map[string]string{
		"identifier": "ana", "password": "wrong",
	}, nil))

	assert.Equal(t, http.StatusUnauthorized, s1)
	assert.Equal(t, s1, s2)
	assert.Equal(t, c1, c2)
}

func TestAPI_Register_Conflict(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/auth/register", map[string]string{
		"username": "ana", "email": "ana@example.com", "password": "s3cret-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/v1/auth/register", map[string]string{
		"username": "ana", "email": "otra@example.com", "password": "s3cret-pass",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ProductLifecycle(t *testing.T) {
	srv, ms := newTestServer(t)

	// Registrar y quedarse con la cookie.
	resp := postJSON(t, srv.URL+"/v1/auth/register", map[string]string{
		"username": "ana", "email": "ana@example.com", "password": "s3cret-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ck := sessionCookie(t, resp)
	resp.Body.Close()

	// La tienda del llamador existe desde el registro.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/v1/stores/me", nil)
	req.AddCookie(ck)
	storeResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, storeResp.StatusCode)
	var myStore struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(storeResp.Body).Decode(&myStore))
	storeResp.Body.Close()
	require.NotEmpty(t, myStore.ID)

	// Publicar un producto.
	resp = postJSON(t, srv.URL+"/v1/products", map[string]string{
		"title": "Mesa", "description": "Mesa de roble",
	}, []*http.Cookie{ck})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID      string `json:"id"`
		StoreID string `json:"store_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, myStore.ID, created.StoreID)

	// El catálogo es público: sin cookie.
	listResp, err := http.Get(srv.URL + "/v1/stores/" + myStore.ID + "/products")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
	}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	listResp.Body.Close()
	require.Len(t, list.Products, 1)

	// Borrar como usuario regular: 403.
	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/v1/products/"+created.ID, nil)
	req.AddCookie(ck)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, delResp.StatusCode)
	delResp.Body.Close()

	// Promover a admin y reintentar: 204 y el producto desaparece del listado.
	ms.mu.Lock()
	for _, u := range ms.users {
		u.Role = repository.RoleAdmin
	}
	ms.mu.Unlock()

	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/v1/products/"+created.ID, nil)
	req.AddCookie(ck)
	delResp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()

	listResp, err = http.Get(srv.URL + "/v1/stores/" + myStore.ID + "/products")
	require.NoError(t, err)
	list.Products = nil
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	listResp.Body.Close()
	assert.Empty(t, list.Products)
}

func TestAPI_BearerTokenAccepted(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/auth/register", map[string]string{
		"username": "ana", "email": "ana@example.com", "password": "s3cret-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	resp.Body.Close()
	require.NotEmpty(t, session.Token)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	meResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, meResp.StatusCode)
	meResp.Body.Close()
}

func TestAPI_UnauthenticatedIs401(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/v1/auth/me", "/v1/stores/me"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}
