package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jacksonn455/user-service/internal/token"
)

func newAuthTestRouter(issuer *token.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(issuer), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	issuer := token.NewIssuer("user-secret", "service-secret", time.Hour, time.Hour)
	expiredIssuer := token.NewIssuer("user-secret", "service-secret", -time.Minute, time.Hour)

	validToken, err := issuer.IssueUserToken("usr-1", "a@b.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	expiredToken, err := expiredIssuer.IssueUserToken("usr-1", "a@b.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	serviceToken, err := issuer.IssueServiceToken("user-service")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{"ok - valid bearer token", "Bearer " + validToken, http.StatusOK},
		{"unauthorised - missing header", "", http.StatusUnauthorized},
		{"unauthorised - not bearer", "Basic abc123", http.StatusUnauthorized},
		{"unauthorised - expired token", "Bearer " + expiredToken, http.StatusUnauthorized},
		{"unauthorised - service token on user endpoint", "Bearer " + serviceToken, http.StatusUnauthorized},
		{"unauthorised - garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(issuer)
			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
