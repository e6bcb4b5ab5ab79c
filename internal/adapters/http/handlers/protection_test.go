package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/jsamuelsen/networker-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/networker-service/internal/app"
	"github.com/jsamuelsen/networker-service/internal/domain"
	"github.com/jsamuelsen/networker-service/internal/mocks"
	"github.com/jsamuelsen/networker-service/internal/platform/config"
)

var start = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newProtectionRouter(t *testing.T, authCfg *config.AuthConfig) (*gin.Engine, *mocks.MockNetworkerClient, *testingclock.FakeClock) {
	t.Helper()

	client := mocks.NewMockNetworkerClient(t)
	clk := testingclock.NewFakeClock(start)

	svc := app.NewProtectionService(app.ProtectionServiceConfig{
		Client: client,
		Clock:  clk,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	router := gin.New()
	NewProtectionHandler(svc, time.Minute).RegisterProtectionRoutes(router.Group("/api/v1"), authCfg)

	return router, client, clk
}

func serve(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestRefreshVCenters(t *testing.T) {
	t.Run("no body returns empty object", func(t *testing.T) {
		router, client, clk := newProtectionRouter(t, nil)
		client.EXPECT().RefreshVCenters(mock.Anything).Return(nil, nil)

		w := serve(router, http.MethodPost, "/api/v1/vcenters/refresh", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{}`, w.Body.String())
		assert.Equal(t, start, clk.Now())
	})

	t.Run("returns networker body and waits", func(t *testing.T) {
		router, client, clk := newProtectionRouter(t, nil)
		client.EXPECT().RefreshVCenters(mock.Anything).Return(map[string]any{"status": "queued"}, nil)

		w := serve(router, http.MethodPost, "/api/v1/vcenters/refresh", `{"waitFor":30}`, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"queued"}`, w.Body.String())
		assert.Equal(t, start.Add(30*time.Second), clk.Now())
	})

	t.Run("negative wait is rejected", func(t *testing.T) {
		router, _, _ := newProtectionRouter(t, nil)

		w := serve(router, http.MethodPost, "/api/v1/vcenters/refresh", `{"waitFor":-1}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "waitFor")
	})

	t.Run("wait beyond the limit is rejected", func(t *testing.T) {
		router, _, clk := newProtectionRouter(t, nil)

		w := serve(router, http.MethodPost, "/api/v1/vcenters/refresh", `{"waitFor":61}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "must be less than or equal to 60", decodeError(t, w).Error.Details["waitFor"])
		assert.Equal(t, start, clk.Now())
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		router, _, _ := newProtectionRouter(t, nil)

		w := serve(router, http.MethodPost, "/api/v1/vcenters/refresh", `{"waitFor":`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrorCodeBadRequest, decodeError(t, w).Error.Code)
	})

	t.Run("networker failure maps to bad gateway", func(t *testing.T) {
		router, client, clk := newProtectionRouter(t, nil)
		client.EXPECT().RefreshVCenters(mock.Anything).
			Return(nil, domain.NewAPIError(domain.KindServer, http.StatusInternalServerError, "refresh failed"))

		w := serve(router, http.MethodPost, "/api/v1/vcenters/refresh", `{"waitFor":10}`, nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)

		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrorCodeUpstream, resp.Error.Code)
		assert.Equal(t, "refresh failed", resp.Error.Message)
		assert.Equal(t, start, clk.Now())
	})
}

func TestUpdateProtectionGroup(t *testing.T) {
	inventory := []domain.VM{
		{Name: "web01", UUID: "u-web01"},
		{Name: "web02", UUID: "u-web02"},
	}

	t.Run("adds missing vms", func(t *testing.T) {
		router, client, _ := newProtectionRouter(t, nil)
		client.EXPECT().ListVMs(mock.Anything).Return(inventory, nil)
		client.EXPECT().ProtectionGroupVMs(mock.Anything, "gold").Return([]string{"u-web01"}, nil)
		client.EXPECT().UpdateWorkItems(mock.Anything, "gold", domain.ModeAdd, "vc01", []string{"u-web02"}).Return(nil)

		w := serve(router, http.MethodPut, "/api/v1/protection-groups/gold/vms",
			`{"vcenter":"vc01","vmNames":["web01","web02"]}`, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"changed":true,"uuids":["u-web02"]}`, w.Body.String())
	})

	t.Run("already absent is unchanged", func(t *testing.T) {
		router, client, _ := newProtectionRouter(t, nil)
		client.EXPECT().ListVMs(mock.Anything).Return(inventory, nil)
		client.EXPECT().ProtectionGroupVMs(mock.Anything, "gold").Return([]string{"u-web01"}, nil)

		w := serve(router, http.MethodPut, "/api/v1/protection-groups/gold/vms",
			`{"vcenter":"vc01","vmNames":["web02","gone"],"state":"absent"}`, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"changed":false,"uuids":[]}`, w.Body.String())
	})

	t.Run("unknown vm is not found", func(t *testing.T) {
		router, client, _ := newProtectionRouter(t, nil)
		client.EXPECT().ListVMs(mock.Anything).Return(inventory, nil)

		w := serve(router, http.MethodPut, "/api/v1/protection-groups/gold/vms",
			`{"vcenter":"vc01","vmNames":["db99"]}`, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)

		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrorCodeNotFound, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "db99")
	})

	t.Run("networker rejection is forbidden", func(t *testing.T) {
		router, client, _ := newProtectionRouter(t, nil)
		client.EXPECT().ListVMs(mock.Anything).
			Return(nil, domain.NewAPIError(domain.KindAccessDenied, http.StatusUnauthorized, "Invalid credentials"))

		w := serve(router, http.MethodPut, "/api/v1/protection-groups/gold/vms",
			`{"vcenter":"vc01","vmNames":["web01"]}`, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, w).Error.Message)
	})

	t.Run("unclassified failure is internal", func(t *testing.T) {
		router, client, _ := newProtectionRouter(t, nil)
		client.EXPECT().ListVMs(mock.Anything).Return(nil, errors.New("boom"))

		w := serve(router, http.MethodPut, "/api/v1/protection-groups/gold/vms",
			`{"vcenter":"vc01","vmNames":["web01"]}`, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, dto.ErrorCodeInternal, decodeError(t, w).Error.Code)
	})

	t.Run("invalid requests", func(t *testing.T) {
		tests := []struct {
			name  string
			body  string
			field string
		}{
			{name: "missing vcenter", body: `{"vmNames":["web01"]}`, field: "vcenter"},
			{name: "empty vm list", body: `{"vcenter":"vc01","vmNames":[]}`, field: "vmNames"},
			{name: "blank vm name", body: `{"vcenter":"vc01","vmNames":[" "]}`, field: "vmNames[0]"},
			{name: "unknown state", body: `{"vcenter":"vc01","vmNames":["web01"],"state":"gone"}`, field: "state"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				router, _, _ := newProtectionRouter(t, nil)

				w := serve(router, http.MethodPut, "/api/v1/protection-groups/gold/vms", tt.body, nil)

				assert.Equal(t, http.StatusBadRequest, w.Code)

				resp := decodeError(t, w)
				assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
				assert.Contains(t, resp.Error.Details, tt.field)
			})
		}
	})
}

func TestRegisterProtectionRoutes_RequiresOperator(t *testing.T) {
	authCfg := &config.AuthConfig{
		Enabled:       true,
		RequiredRole:  config.DefaultRequiredRole,
		RolesHeader:   "X-User-Roles",
		SubjectHeader: "X-User-ID",
	}

	t.Run("anonymous caller", func(t *testing.T) {
		router, _, _ := newProtectionRouter(t, authCfg)

		w := serve(router, http.MethodPost, "/api/v1/vcenters/refresh", "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("caller without role", func(t *testing.T) {
		router, _, _ := newProtectionRouter(t, authCfg)

		w := serve(router, http.MethodPut, "/api/v1/protection-groups/gold/vms",
			`{"vcenter":"vc01","vmNames":["web01"]}`,
			map[string]string{"X-User-ID": "alice", "X-User-Roles": "viewer"})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("operator", func(t *testing.T) {
		router, client, _ := newProtectionRouter(t, authCfg)
		client.EXPECT().RefreshVCenters(mock.Anything).Return(nil, nil)

		w := serve(router, http.MethodPost, "/api/v1/vcenters/refresh", "",
			map[string]string{"X-User-ID": "alice", "X-User-Roles": "backup-operator"})

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestNewProtectionHandler_DefaultMaxWait(t *testing.T) {
	svc := app.NewProtectionService(app.ProtectionServiceConfig{Client: mocks.NewMockNetworkerClient(t)})

	assert.Equal(t, DefaultMaxRefreshWait, NewProtectionHandler(svc, 0).maxWait)
	assert.Equal(t, time.Minute, NewProtectionHandler(svc, time.Minute).maxWait)
}
