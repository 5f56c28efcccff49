package forum

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pm-ajay/scheme-portal/portal-backend/internal/auth"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "portal_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&Message{}))

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Issue(&auth.User{
		ID:   "ia001",
		Name: "Bharat Infrastructure Pvt Ltd",
		Role: auth.RoleImplementingAgency,
	})
	assert.NoError(t, err)

	handler := NewHandler(NewRepository(db), issuer, zap.NewNop())
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router, db, token
}

func TestPostMessage(t *testing.T) {
	router, db, token := setupRouter(t)

	body, _ := json.Marshal(PostRequest{Message: "Road work resumed after the monsoon break."})
	req := httptest.NewRequest(http.MethodPost, "/api/forum/messages", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string  `json:"message"`
		Data    Message `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Message posted successfully", resp.Message)
	assert.Equal(t, "ia001", resp.Data.UserID)
	assert.Equal(t, "Bharat Infrastructure Pvt Ltd", resp.Data.UserName)

	var count int64
	assert.NoError(t, db.Model(&Message{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPostEmptyMessageWritesNothing(t *testing.T) {
	router, db, token := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/forum/messages", bytes.NewReader([]byte(`{"message":""}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message content is required")

	var count int64
	assert.NoError(t, db.Model(&Message{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListRequiresToken(t *testing.T) {
	router, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/forum/messages", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Access token required")
}

func TestListNewestFirst(t *testing.T) {
	router, db, token := setupRouter(t)

	older := Message{UserID: "ia001", UserName: "A", Message: "first", Timestamp: time.Now().Add(-time.Hour)}
	newer := Message{UserID: "ia002", UserName: "B", Message: "second", Timestamp: time.Now()}
	assert.NoError(t, db.Create(&older).Error)
	assert.NoError(t, db.Create(&newer).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/forum/messages", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var messages []Message
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
	assert.Len(t, messages, 2)
	assert.Equal(t, "second", messages[0].Message)
}
