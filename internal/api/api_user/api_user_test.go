package api_user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devconnector/internal/config"
	"devconnector/internal/middleware"
	"devconnector/internal/models"
	"devconnector/internal/utils/utils_auth"
	"devconnector/internal/utils/utils_db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSecret = []byte("test-secret")

type fakeUserStore struct {
	getUserByEmailFunc  func(email string) (models.User, error)
	getUserByIDFunc     func(id uuid.UUID) (models.User, error)
	userEmailExistsFunc func(email string) (bool, error)
	insertUserFunc      func(user *models.User) error
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	if f.getUserByEmailFunc != nil {
		return f.getUserByEmailFunc(email)
	}
	return models.User{}, errors.New("not implemented")
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id uuid.UUID) (models.User, error) {
	if f.getUserByIDFunc != nil {
		return f.getUserByIDFunc(id)
	}
	return models.User{}, errors.New("not implemented")
}

func (f *fakeUserStore) UserEmailExists(_ context.Context, email string) (bool, error) {
	if f.userEmailExistsFunc != nil {
		return f.userEmailExistsFunc(email)
	}
	return false, errors.New("not implemented")
}

func (f *fakeUserStore) InsertUser(_ context.Context, user *models.User) error {
	if f.insertUserFunc != nil {
		return f.insertUserFunc(user)
	}
	return errors.New("not implemented")
}

func registerTestRouter(store utils_db.UserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(
		middleware.ConfigProvider(config.Config{JWTSecret: testSecret, TokenTTL: time.Hour}),
		middleware.ErrorHandler(zap.NewNop()),
	)
	r.POST("/api/users/register", Register(store))
	return r
}

func postRegister(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_ReportsAllViolatedFields(t *testing.T) {
	r := registerTestRouter(&fakeUserStore{})

	w := postRegister(r, `{"name":"","email":"nope","password":"abc"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":[
		{"field":"name","msg":"name must not be empty"},
		{"field":"email","msg":"please include a valid email"},
		{"field":"password","msg":"please enter a password with five or more characters"}
	]}`, w.Body.String())
}

func TestRegister_RejectsMalformedBody(t *testing.T) {
	r := registerTestRouter(&fakeUserStore{})

	w := postRegister(r, `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_DuplicateEmailStopsBeforeInsert(t *testing.T) {
	inserted := false
	store := &fakeUserStore{
		userEmailExistsFunc: func(email string) (bool, error) {
			assert.Equal(t, "ann@x.com", email)
			return true, nil
		},
		insertUserFunc: func(*models.User) error {
			inserted = true
			return nil
		},
	}
	r := registerTestRouter(store)

	w := postRegister(r, `{"name":"Ann","email":"ann@x.com","password":"secret123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":[{"msg":"user already exists"}]}`, w.Body.String())
	assert.False(t, inserted)
}

func TestRegister_SuccessIssuesTokenForInsertedUser(t *testing.T) {
	var saved models.User
	store := &fakeUserStore{
		userEmailExistsFunc: func(string) (bool, error) { return false, nil },
		insertUserFunc: func(user *models.User) error {
			saved = *user
			return nil
		},
	}
	r := registerTestRouter(store)

	w := postRegister(r, `{"name":"Ann","email":"ann@x.com","password":"secret123"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	userID, err := utils_auth.VerifyToken(body.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, userID)

	assert.Equal(t, "ann@x.com", saved.Email)
	assert.NotEmpty(t, saved.AvatarURL)
	assert.True(t, utils_auth.VerifyArgon2Hash("secret123", saved.PasswordHash))
}
