package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mailforge/template-service/internal/api"
	"github.com/mailforge/template-service/internal/api/handler"
	"github.com/mailforge/template-service/internal/api/middleware"
	"github.com/mailforge/template-service/internal/core/domain"
	"github.com/mailforge/template-service/internal/core/service"
)

// In-memory repositories backing a fully wired Echo instance: real services,
// real token verification, real middleware, real error mapping. Only the
// Mongo and Redis layers are stubbed out.

type memUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
	next    int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*domain.User{}, byID: map[string]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	copy := *u
	r.next++
	copy.ID = fmt.Sprintf("u%d", r.next)
	r.byEmail[copy.Email] = &copy
	r.byID[copy.ID] = &copy
	return &copy, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type memTemplateRepo struct {
	templates map[string]*domain.Template
	next      int
}

func newMemTemplateRepo() *memTemplateRepo {
	return &memTemplateRepo{templates: map[string]*domain.Template{}}
}

func (r *memTemplateRepo) Create(_ context.Context, tpl *domain.Template) (*domain.Template, error) {
	copy := *tpl
	r.next++
	copy.ID = fmt.Sprintf("t%d", r.next)
	stored := copy
	r.templates[copy.ID] = &stored
	return &copy, nil
}

func (r *memTemplateRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Template, error) {
	var out []domain.Template
	for _, t := range r.templates {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTemplateRepo) FindByID(_ context.Context, ownerID, id string) (*domain.Template, error) {
	t, ok := r.templates[id]
	if !ok || t.OwnerID != ownerID {
		return nil, domain.ErrTemplateNotFound
	}
	copy := *t
	return &copy, nil
}

func (r *memTemplateRepo) Update(_ context.Context, ownerID, id, name, subject, body string) error {
	t, ok := r.templates[id]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrTemplateNotFound
	}
	t.Name, t.Subject, t.Body = name, subject, body
	return nil
}

func (r *memTemplateRepo) Delete(_ context.Context, ownerID, id string) error {
	t, ok := r.templates[id]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrTemplateNotFound
	}
	delete(r.templates, id)
	return nil
}

func newTestServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	userRepo := newMemUserRepo()
	templateRepo := newMemTemplateRepo()
	tokens := service.NewTokenService("test-secret", time.Hour)
	authService := service.NewAuthService(userRepo, tokens, nil, zerolog.Nop())
	templateService := service.NewTemplateService(templateRepo, zerolog.Nop())

	authHandler := handler.NewAuthHandler(authService)
	templateHandler := handler.NewTemplateHandler(templateService)
	gate := middleware.Auth(tokens, userRepo)

	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	t := e.Group("/template", gate)
	t.POST("", templateHandler.Create)
	t.GET("", templateHandler.List)
	t.GET("/:id", templateHandler.Get)
	t.PUT("/:id", templateHandler.Update)
	t.DELETE("/:id", templateHandler.Delete)

	return e
}

func request(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, e *echo.Echo, email, password string) {
	t.Helper()
	body := fmt.Sprintf(`{"first_name":"Test","last_name":"User","email":%q,"password":%q}`, email, password)
	rec := request(e, http.MethodPost, "/register", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, rec.Code, rec.Body)
	}
}

func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := request(e, http.MethodPost, "/login", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", email, rec.Code, rec.Body)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login %s: bad token payload: %s", email, rec.Body)
	}
	return resp.Token
}

func TestScenario_TemplateLifecycle(t *testing.T) {
	e := newTestServer()

	register(t, e, "alice@x.com", "pw1")
	token := login(t, e, "alice@x.com", "pw1")

	// Create.
	rec := request(e, http.MethodPost, "/template", token,
		`{"template_name":"welcome","subject":"Hi","body":"Hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var created struct {
		TemplateID string `json:"template_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil || created.TemplateID == "" {
		t.Fatalf("create: bad payload: %s", rec.Body)
	}

	// Get returns the same three fields.
	rec = request(e, http.MethodGet, "/template/"+created.TemplateID, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
	var got struct {
		Template struct {
			Name    string `json:"template_name"`
			Subject string `json:"subject"`
			Body    string `json:"body"`
		} `json:"template"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("get: invalid json: %v", err)
	}
	if got.Template.Name != "welcome" || got.Template.Subject != "Hi" || got.Template.Body != "Hello" {
		t.Fatalf("get: unexpected fields: %+v", got.Template)
	}

	// A different user sees 404 for the same id.
	register(t, e, "bob@x.com", "pw2")
	bobToken := login(t, e, "bob@x.com", "pw2")
	rec = request(e, http.MethodGet, "/template/"+created.TemplateID, bobToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign get: expected 404, got %d", rec.Code)
	}

	// Delete, then the owner's get reports 404 too.
	rec = request(e, http.MethodDelete, "/template/"+created.TemplateID, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec = request(e, http.MethodGet, "/template/"+created.TemplateID, token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestScenario_DuplicateRegistration(t *testing.T) {
	e := newTestServer()

	register(t, e, "alice@x.com", "pw1")

	rec := request(e, http.MethodPost, "/register", "",
		`{"first_name":"Other","last_name":"Person","email":"alice@x.com","password":"pw2"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", rec.Code)
	}

	// The original credentials still work.
	login(t, e, "alice@x.com", "pw1")
}

func TestScenario_LoginFailuresLookIdentical(t *testing.T) {
	e := newTestServer()

	register(t, e, "alice@x.com", "pw1")

	wrongPass := request(e, http.MethodPost, "/login", "",
		`{"email":"alice@x.com","password":"nope"}`)
	noUser := request(e, http.MethodPost, "/login", "",
		`{"email":"ghost@x.com","password":"nope"}`)

	if wrongPass.Code != http.StatusUnauthorized || noUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPass.Code, noUser.Code)
	}
	if wrongPass.Body.String() != noUser.Body.String() {
		t.Fatalf("failure bodies differ: %q vs %q", wrongPass.Body, noUser.Body)
	}
}

func TestScenario_CrossTenantWritesReportNotFound(t *testing.T) {
	e := newTestServer()

	register(t, e, "alice@x.com", "pw1")
	register(t, e, "bob@x.com", "pw2")
	aliceToken := login(t, e, "alice@x.com", "pw1")
	bobToken := login(t, e, "bob@x.com", "pw2")

	rec := request(e, http.MethodPost, "/template", aliceToken,
		`{"template_name":"welcome","subject":"Hi","body":"Hello"}`)
	var created struct {
		TemplateID string `json:"template_id"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	rec = request(e, http.MethodPut, "/template/"+created.TemplateID, bobToken,
		`{"template_name":"stolen","subject":"x","body":"y"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign update: expected 404, got %d", rec.Code)
	}
	rec = request(e, http.MethodDelete, "/template/"+created.TemplateID, bobToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: expected 404, got %d", rec.Code)
	}

	// Alice's template is untouched.
	rec = request(e, http.MethodGet, "/template/"+created.TemplateID, aliceToken, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"welcome"`) {
		t.Fatalf("record mutated by foreign caller: %d %s", rec.Code, rec.Body)
	}

	// Bob's list never contains Alice's template.
	rec = request(e, http.MethodGet, "/template", bobToken, "")
	if strings.Contains(rec.Body.String(), created.TemplateID) {
		t.Fatalf("foreign template leaked into list: %s", rec.Body)
	}
}

func TestScenario_ProtectedRoutesRejectBadTokens(t *testing.T) {
	e := newTestServer()

	for _, header := range []string{"", "Bearer garbage", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/template", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}
