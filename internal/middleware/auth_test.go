package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantrymatch/backend/internal/types"
)

type mockTokenValidator struct {
	mock.Mock
}

func (m *mockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		setupMock  func(*mockTokenValidator)
		wantStatus int
	}{
		{
			name:       "missing header",
			setupMock:  func(*mockTokenValidator) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			setupMock:  func(*mockTokenValidator) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "invalid token",
			header: "Bearer bad",
			setupMock: func(m *mockTokenValidator) {
				m.On("ValidateToken", "bad").Return(nil, errors.New("expired"))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "Bearer good",
			setupMock: func(m *mockTokenValidator) {
				m.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: userID, Username: "cook"}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := new(mockTokenValidator)
			tt.setupMock(validator)

			router := gin.New()
			router.Use(AuthMiddleware(validator))
			router.GET("/me", func(c *gin.Context) {
				id, ok := UserID(c)
				assert.True(t, ok)
				assert.Equal(t, userID, id)
				assert.Equal(t, "cook", c.GetString(usernameKey))
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
			}
			validator.AssertExpectations(t)
		})
	}
}

func TestUserID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := UserID(c)
	assert.False(t, ok)
}
