package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func signatureRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/hook", VerifySignature(secret), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestVerifySignature(t *testing.T) {
	cases := []struct {
		name      string
		signature string
		setHeader bool
		wantCode  int
	}{
		{"matching secret", "s3cret", true, http.StatusOK},
		{"wrong secret", "guess", true, http.StatusUnauthorized},
		{"empty header", "", true, http.StatusUnauthorized},
		{"missing header", "", false, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := signatureRouter("s3cret")
			req := httptest.NewRequest(http.MethodPost, "/hook", nil)
			if tc.setHeader {
				req.Header.Set("verif-hash", tc.signature)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantCode)
			}
			if tc.wantCode == http.StatusUnauthorized && w.Body.String() != "Unauthorized" {
				t.Errorf("body = %q, want Unauthorized", w.Body.String())
			}
		})
	}
}
