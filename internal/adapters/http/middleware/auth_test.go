package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/networker-service/internal/platform/config"
)

func TestExtractClaims(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		config         *config.AuthConfig
		headers        map[string]string
		expectedClaims *Claims
	}{
		{
			name:   "uses default headers when config is nil",
			config: nil,
			headers: map[string]string{
				defaultSubjectHeader: "user-123",
				defaultRolesHeader:   "backup-operator, viewer",
			},
			expectedClaims: &Claims{
				Subject: "user-123",
				Roles:   []string{"backup-operator", "viewer"},
			},
		},
		{
			name: "uses custom config headers",
			config: &config.AuthConfig{
				SubjectHeader: "X-Forwarded-User",
				RolesHeader:   "X-Forwarded-Groups",
			},
			headers: map[string]string{
				"X-Forwarded-User":   "user-456",
				"X-Forwarded-Groups": "backup-operator",
			},
			expectedClaims: &Claims{
				Subject: "user-456",
				Roles:   []string{"backup-operator"},
			},
		},
		{
			name:           "returns empty claims when headers not present",
			config:         nil,
			headers:        map[string]string{},
			expectedClaims: &Claims{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			for key, value := range tt.headers {
				c.Request.Header.Set(key, value)
			}

			claims := ExtractClaims(c, tt.config)

			assert.Equal(t, tt.expectedClaims.Subject, claims.Subject)
			assert.Equal(t, tt.expectedClaims.Roles, claims.Roles)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		subjectHeader  string
		expectedStatus int
	}{
		{
			name:           "passes when subject present",
			subjectHeader:  "user-123",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "rejects when subject missing",
			subjectHeader:  "",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := gin.New()
			router.Use(RequireAuth(nil))
			router.GET("/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.subjectHeader != "" {
				req.Header.Set(defaultSubjectHeader, tt.subjectHeader)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRequireOperator(t *testing.T) {
	t.Parallel()

	enabled := &config.AuthConfig{
		Enabled:       true,
		RequiredRole:  config.DefaultRequiredRole,
		RolesHeader:   defaultRolesHeader,
		SubjectHeader: defaultSubjectHeader,
	}

	tests := []struct {
		name           string
		config         *config.AuthConfig
		subject        string
		roles          string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "auth disabled lets anonymous callers through",
			config:         &config.AuthConfig{Enabled: false, RequiredRole: config.DefaultRequiredRole},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "nil config lets callers through",
			config:         nil,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "operator passes",
			config:         enabled,
			subject:        "user-1",
			roles:          "viewer,backup-operator",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing subject is unauthorized",
			config:         enabled,
			roles:          "backup-operator",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "UNAUTHORIZED",
		},
		{
			name:           "missing role is forbidden",
			config:         enabled,
			subject:        "user-1",
			roles:          "viewer",
			expectedStatus: http.StatusForbidden,
			expectedCode:   "FORBIDDEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handlerCalls := 0

			router := gin.New()
			router.PUT("/test", RequireOperator(tt.config), func(c *gin.Context) {
				handlerCalls++
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPut, "/test", nil)
			if tt.subject != "" {
				req.Header.Set(defaultSubjectHeader, tt.subject)
			}

			if tt.roles != "" {
				req.Header.Set(defaultRolesHeader, tt.roles)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode != "" {
				assert.Contains(t, w.Body.String(), tt.expectedCode)
				assert.Zero(t, handlerCalls)
			} else {
				assert.Equal(t, 1, handlerCalls)
			}
		})
	}
}
