package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrymatch/backend/internal/middleware"
	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/testhelpers"
)

var pngImage = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func init() {
	gin.SetMode(gin.TestMode)
}

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, image []byte) ([]string, error) {
	args := m.Called(ctx, image)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

type mockObjectPutter struct {
	mock.Mock
}

func (m *mockObjectPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

// testAPI is a router serving every handler from sqlite-backed services
type testAPI struct {
	db        *gorm.DB
	router    *gin.Engine
	userID    uuid.UUID
	token     string
	extractor *mockExtractor
	putter    *mockObjectPutter
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()

	db := testhelpers.SetupSQLiteDatabase(t)
	log := zap.NewNop()

	auth := service.NewAuthService("test-secret")
	recipes := service.NewRecipeService(db, log)
	ingredients := service.NewIngredientService(db, log)
	preferences := service.NewPreferenceService(db)
	ratings := service.NewRatingService(db)
	extractor := new(mockExtractor)
	putter := new(mockObjectPutter)
	noShuffle := func(int, func(i, j int)) {}

	router := gin.New()
	v1 := router.Group("/api/v1")
	authMW := middleware.AuthMiddleware(auth)

	NewRecipeHandler(
		recipes,
		service.NewMatchService(recipes, log),
		service.NewSuggestionService(recipes, preferences, ratings, noShuffle, log),
		service.NewImageService(putter, "recipes-bucket", log),
		log,
		false,
	).RegisterRoutes(v1, authMW)
	NewIngredientHandler(ingredients, service.NewScanService(extractor, ingredients, log), log, false).
		RegisterRoutes(v1, authMW, nil)
	NewPreferenceHandler(preferences, log, false).RegisterRoutes(v1, authMW)
	NewRatingHandler(ratings, log, false).RegisterRoutes(v1, authMW)

	userID := uuid.New()
	token, err := auth.GenerateToken(userID, "cook")
	require.NoError(t, err)

	return &testAPI{
		db:        db,
		router:    router,
		userID:    userID,
		token:     token,
		extractor: extractor,
		putter:    putter,
	}
}

// do sends a JSON request. An empty token sends no Authorization header.
func (a *testAPI) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewBuffer(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// upload sends image as the multipart "image" field. A nil image sends an
// empty form.
func (a *testAPI) upload(t *testing.T, path string, image []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if image != nil {
		part, err := form.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	} else {
		require.NoError(t, form.WriteField("note", "no image"))
	}
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+a.token)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// errorCode returns error.code from an error envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, w, &body)
	return body.Error.Code
}
