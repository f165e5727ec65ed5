package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	return db, mock
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, mock := newMockDB(t)
	r := gin.New()
	r.GET("/health", NewHealthController(db).Health)

	call := func() (int, map[string]string) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/health", nil)
		r.ServeHTTP(w, req)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w.Code, body
	}

	mock.ExpectPing()
	code, body := call()
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	code, body = call()
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["error"], "connection refused")

	assert.NoError(t, mock.ExpectationsWereMet())
}
