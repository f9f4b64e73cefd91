package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Ovsyanko/farm_market/internal/events"
	"github.com/Ovsyanko/farm_market/internal/models"
	"github.com/Ovsyanko/farm_market/internal/repo"
	"github.com/Ovsyanko/farm_market/internal/service/token"
)

type testEnv struct {
	T       *testing.T
	E       *echo.Echo
	DB      *gorm.DB
	A       *AuthHandler
	C       *CropHandler
	F       *ForumHandler
	Session *token.Service
}

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Crop{}, &models.ForumPost{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := initTestDB(t)
	producer := &events.Producer{}

	session := &token.Service{
		Tokens:        &repo.TokenRepo{DB: db},
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	return &testEnv{
		T:       t,
		E:       echo.New(),
		DB:      db,
		Session: session,
		A: &AuthHandler{
			Users:    &repo.UserRepo{DB: db},
			Session:  session,
			Producer: producer,
		},
		C: &CropHandler{
			Crops:    &repo.CropRepo{DB: db},
			Producer: producer,
		},
		F: &ForumHandler{
			Posts:    &repo.ForumRepo{DB: db},
			Producer: producer,
		},
	}
}

func (env *testEnv) doFormRequest(method, path string, form url.Values, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var body string
	if form != nil {
		body = form.Encode()
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) registerUser(username, email, password, role string) *models.User {
	env.T.Helper()

	user, err := env.A.Users.Create(context.Background(), username, email, password, role)
	if err != nil {
		env.T.Fatalf("failed to create user: %v", err)
	}
	return user
}
