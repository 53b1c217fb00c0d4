package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	appcompany "github.com/Graviton17/TrustChain-sub001/internal/application/company"
	appinsurance "github.com/Graviton17/TrustChain-sub001/internal/application/insurance"
	appproject "github.com/Graviton17/TrustChain-sub001/internal/application/project"
	appsubsidy "github.com/Graviton17/TrustChain-sub001/internal/application/subsidy"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/config"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope mirrors dto.Response with a raw data field for re-decoding
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Total     *int64          `json:"total"`
	Message   string          `json:"message"`
	Error     string          `json:"error"`
	Code      string          `json:"code"`
	RequestID string          `json:"request_id"`
}

type recordedError struct {
	resource string
	code     string
}

type errorRecorder struct {
	mu     sync.Mutex
	errors []recordedError
}

func (r *errorRecorder) RecordDomainError(_ context.Context, resource, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, recordedError{resource: resource, code: code})
}

func (r *errorRecorder) all() []recordedError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedError(nil), r.errors...)
}

type apiFixture struct {
	t        *testing.T
	db       *gorm.DB
	engine   *gin.Engine
	recorder *errorRecorder
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api.db")
	database, err := persistence.Open(sqlite.Open(path), &config.DatabaseConfig{MaxOpenConns: 1}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, persistence.AutoMigrate(context.Background(), database.DB))

	repos := persistence.NewRepositories(database.DB)
	services := Services{
		Company:   appcompany.NewService(repos.Profiles, repos.Contacts, repos.Financials, repos.Operations),
		Project:   appproject.NewService(repos.Projects, repos.Compliance, repos.ProjectFinance, repos.Production, repos.Verification),
		Insurance: appinsurance.NewService(repos.Policies),
		Subsidy:   appsubsidy.NewService(repos.Subsidies, nil),
	}

	recorder := &errorRecorder{}
	engine := gin.New()
	api := engine.Group("/api/v1")
	for _, r := range APIHandlers(services, Options{Errors: recorder}) {
		r.RegisterRoutes(api)
	}

	return &apiFixture{t: t, db: database.DB, engine: engine, recorder: recorder}
}

func (f *apiFixture) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	f.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(f.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(f.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

// create posts body and returns the stored record's "$id"
func (f *apiFixture) create(path string, body any) string {
	f.t.Helper()
	w, env := f.do(http.MethodPost, path, body)
	require.Equal(f.t, http.StatusCreated, w.Code, w.Body.String())

	var rec map[string]any
	require.NoError(f.t, json.Unmarshal(env.Data, &rec))
	id, _ := rec["$id"].(string)
	require.NotEmpty(f.t, id)
	return id
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
