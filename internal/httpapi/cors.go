package httpapi

import (
	"net/http"
	"strings"
)

// trustedOriginSuffixes are deployment platforms whose subdomains may call
// the API without being listed in the allow-list individually.
var trustedOriginSuffixes = []string{
	".vercel.app",
	".netlify.app",
}

// originAllowed decides whether a browser origin may use the API. It is a
// pure function of its inputs so the policy is testable on its own.
// Requests without an Origin header (curl, server-to-server) pass an empty
// origin and are always allowed.
func originAllowed(origin string, allowlist []string) bool {
	if origin == "" {
		return true
	}
	for _, allowed := range allowlist {
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}
	lowered := strings.ToLower(origin)
	for _, suffix := range trustedOriginSuffixes {
		if strings.HasSuffix(lowered, suffix) {
			return true
		}
	}
	return false
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !originAllowed(origin, s.cfg.CORSOrigins) {
			writeError(w, http.StatusForbidden, "cors_rejected", "origin not allowed by CORS policy: "+origin)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
