package village

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
	"pm-ajay/scheme-portal/portal-backend/internal/projects"
)

func strPtr(s string) *string { return &s }

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *auth.TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "portal_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&auth.User{}, &NeedsAssessment{}, &Feedback{}, &projects.Project{}))

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	handler := NewHandler(NewRepository(db), issuer, zap.NewNop())
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router, db, issuer
}

func committeeToken(t *testing.T, issuer *auth.TokenIssuer) string {
	t.Helper()
	token, err := issuer.Issue(&auth.User{
		ID:       "vc001",
		Name:     "Village Committee Head - Thane Rural",
		Role:     auth.RoleVillageCommittee,
		State:    strPtr("Maharashtra"),
		District: strPtr("Mumbai"),
		Village:  strPtr("Thane Rural"),
	})
	assert.NoError(t, err)
	return token
}

func TestSubmitNeedTakesLocationFromClaims(t *testing.T) {
	router, db, issuer := setupRouter(t)
	token := committeeToken(t, issuer)

	body, _ := json.Marshal(SubmitNeedRequest{
		NeedsType:             "Water Supply",
		Description:           "Hand pumps in the eastern hamlet run dry by March.",
		Priority:              "High",
		ExpectedBeneficiaries: 450,
		EstimatedCost:         1200000,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/village/needs", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var need NeedsAssessment
	assert.NoError(t, db.First(&need).Error)
	assert.Equal(t, "Thane Rural", need.Village)
	assert.Equal(t, "Maharashtra", need.State)
	assert.Equal(t, "Mumbai", need.District)
	assert.Equal(t, "vc001", need.SubmittedBy)
	assert.Equal(t, "Submitted", need.Status)
}

func TestSubmitNeedValidation(t *testing.T) {
	router, db, issuer := setupRouter(t)
	token := committeeToken(t, issuer)

	req := httptest.NewRequest(http.MethodPost, "/api/village/needs", bytes.NewReader([]byte(`{"needs_type":"Water Supply"}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Needs type, description, and priority are required")

	var count int64
	assert.NoError(t, db.Model(&NeedsAssessment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitNeedRequiresCommitteeRole(t *testing.T) {
	router, _, issuer := setupRouter(t)

	token, err := issuer.Issue(&auth.User{ID: "sa001", Role: auth.RoleStateAdmin})
	assert.NoError(t, err)

	body, _ := json.Marshal(SubmitNeedRequest{NeedsType: "Roads", Description: "d", Priority: "Low"})
	req := httptest.NewRequest(http.MethodPost, "/api/village/needs", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient permissions")
}

func TestStateFeedbackScopedToState(t *testing.T) {
	router, db, issuer := setupRouter(t)

	rows := []Feedback{
		{ProjectID: "PROJ001", FeedbackType: "Appreciation", Content: "Road quality is good", Village: "Thane Rural", State: "Maharashtra", SubmittedBy: "vc001"},
		{ProjectID: "PROJ003", FeedbackType: "Complaint", Content: "Work stalled", Village: "Ramgarh", State: "Haryana", SubmittedBy: "vc002"},
	}
	assert.NoError(t, db.Create(&rows).Error)

	token, err := issuer.Issue(&auth.User{ID: "sa002", Role: auth.RoleStateAdmin, State: strPtr("Haryana")})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/state/feedback", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var feedback []Feedback
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &feedback))
	assert.Len(t, feedback, 1)
	assert.Equal(t, "PROJ003", feedback[0].ProjectID)
}
