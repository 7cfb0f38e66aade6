package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	defaultCORSMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}
	defaultCORSHeaders = []string{"Accept", "Content-Type", "X-Request-ID"}
)

// CORSOptions configures the CORS middleware. Empty method and header lists
// fall back to what the site's browser forms and wizard API send.
type CORSOptions struct {
	// AllowedOrigins is an allowlist; "*" echoes any Origin back.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         time.Duration
}

// CORS answers preflights for allowlisted origins and decorates their
// responses. Preflights from other origins, or for methods the API does not
// serve, are refused with 403.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	allowAny := false
	allow := map[string]struct{}{}
	for _, origin := range opts.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		switch origin {
		case "":
		case "*":
			allowAny = true
		default:
			allow[origin] = struct{}{}
		}
	}

	methods := normalizeList(opts.AllowedMethods, defaultCORSMethods, strings.ToUpper)
	methodSet := map[string]struct{}{http.MethodOptions: {}}
	for _, m := range methods {
		methodSet[m] = struct{}{}
	}
	allowedMethods := strings.Join(append(methods, http.MethodOptions), ", ")
	allowedHeaders := strings.Join(normalizeList(opts.AllowedHeaders, defaultCORSHeaders, http.CanonicalHeaderKey), ", ")

	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = 10 * time.Minute
	}
	maxAgeSeconds := strconv.Itoa(int(maxAge.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			w.Header().Add("Vary", "Origin")
			_, listed := allow[origin]
			allowed := origin != "" && (allowAny || listed)

			preflight := r.Method == http.MethodOptions && origin != "" && r.Header.Get("Access-Control-Request-Method") != ""
			if preflight {
				_, methodOK := methodSet[strings.ToUpper(r.Header.Get("Access-Control-Request-Method"))]
				if !allowed || !methodOK {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
				w.Header().Set("Access-Control-Max-Age", maxAgeSeconds)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// normalizeList trims, canonicalizes and dedupes values, using fallback when
// nothing usable is left.
func normalizeList(values, fallback []string, canon func(string) string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range values {
		v = canon(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return append([]string(nil), fallback...)
	}
	return out
}
