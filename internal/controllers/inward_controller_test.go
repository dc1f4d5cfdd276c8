package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"register-server/internal/logics"
	"register-server/internal/registry"
	"register-server/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestController(t *testing.T) (*InwardController, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repositories.AutoMigrate(db))

	svc := logics.NewInwardService(db, registry.NewSequenceService(), nil, zap.NewNop(), []string{"UG", "PG/PRO", "PhD"})
	return NewInwardController(svc), db
}

func doRequest(t *testing.T, handler echo.HandlerFunc, method, path, body string, params map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	require.NoError(t, handler(c))

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestCreateInwardEndpoint(t *testing.T) {
	controller, _ := newTestController(t)

	body := fmt.Sprintf(`{
		"subject": "Transcript request",
		"means_of_receipt": "Post",
		"from_whom": "Registrar",
		"received_at": %q
	}`, time.Now().Format(time.RFC3339))

	rec, envelope := doRequest(t, controller.CreateInward, http.MethodPost, "/api/inward", body, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, envelope["success"])

	entry := envelope["entry"].(map[string]interface{})
	assert.Equal(t, fmt.Sprintf("INW/%d/001", time.Now().Year()), entry["inward_no"])
	assert.Equal(t, "Unassigned", entry["assignment_status"])
}

func TestCreateInwardEndpointRejectsBadTeam(t *testing.T) {
	controller, _ := newTestController(t)

	body := fmt.Sprintf(`{
		"subject": "Transcript request",
		"means_of_receipt": "Post",
		"from_whom": "Registrar",
		"received_at": %q,
		"assigned_team": "Facilities",
		"assigned_to_email": "x@example.edu"
	}`, time.Now().Format(time.RFC3339))

	rec, envelope := doRequest(t, controller.CreateInward, http.MethodPost, "/api/inward", body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, envelope["success"])
	assert.Contains(t, envelope["message"], "Facilities")
}

func TestGetInwardEndpointNotFound(t *testing.T) {
	controller, _ := newTestController(t)

	rec, envelope := doRequest(t, controller.GetInward, http.MethodGet, "/api/inward/nope", "", map[string]string{"id": "nope"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, envelope["success"])
}

func TestUpdateInwardStatusEndpoint(t *testing.T) {
	controller, db := newTestController(t)

	svc := logics.NewInwardService(db, registry.NewSequenceService(), nil, zap.NewNop(), []string{"UG"})
	entry, err := svc.Create(context.Background(), logics.CreateInwardInput{
		Subject:        "Transcript request",
		MeansOfReceipt: "Post",
		FromWhom:       "Registrar",
		ReceivedAt:     time.Now(),
	})
	require.NoError(t, err)

	rec, envelope := doRequest(t, controller.UpdateInwardStatus, http.MethodPut,
		"/api/inward/"+entry.ID+"/status", `{"assignment_status": "In Progress"}`,
		map[string]string{"id": entry.ID})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope["success"])
	updated := envelope["entry"].(map[string]interface{})
	assert.Equal(t, "In Progress", updated["assignment_status"])
}
