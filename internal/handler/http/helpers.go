package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
)

// claimString extracts a string claim from the verified JWT, empty when
// absent.
func claimString(r *http.Request, key string) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}

func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}
