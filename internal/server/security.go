package server

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// SecurityConfig controls the security middleware and the input limits of
// the API.
type SecurityConfig struct {
	// EnableCORS adds CORS headers for allowed origins.
	EnableCORS bool
	// AllowedOrigins lists the origins accepted by CORS. "*" accepts all.
	AllowedOrigins []string
	// AllowedMethods lists the methods advertised by CORS.
	AllowedMethods []string
	// MaxOperandDigits is the longest operand text accepted by /eval.
	MaxOperandDigits int
}

// DefaultSecurityConfig returns a read-only, permissive CORS setup.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:       true,
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		MaxOperandDigits: config.DefaultMaxOperandDigits,
	}
}

// securityHeaders are set on every response. The API serves data only,
// so framing and all content sources are denied.
var securityHeaders = [...][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Cache-Control", "no-store"},
}

// SecurityMiddleware sets the security headers, handles CORS and answers
// preflight requests without calling next.
func SecurityMiddleware(cfg SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range securityHeaders {
			h.Set(kv[0], kv[1])
		}

		if cfg.EnableCORS {
			if origin, ok := allowedOrigin(cfg.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				if origin != "*" {
					h.Add("Vary", "Origin")
				}
				h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Accept, Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

func allowedOrigin(allowed []string, origin string) (string, bool) {
	if slices.Contains(allowed, "*") {
		return "*", true
	}
	if origin != "" && slices.Contains(allowed, origin) {
		return origin, true
	}
	return "", false
}

// validateOperands rejects operands longer than the configured limit.
func validateOperands(cfg SecurityConfig, operands []string) error {
	if cfg.MaxOperandDigits <= 0 {
		return nil
	}
	for i, s := range operands {
		if len(s) > cfg.MaxOperandDigits {
			return apperrors.ValidationError{
				Field:   operandParams[i],
				Message: fmt.Sprintf("operand has %d characters, the limit is %d", len(s), cfg.MaxOperandDigits),
			}
		}
	}
	return nil
}
