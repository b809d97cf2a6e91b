package request

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// RouteIntParam returns an URL route parameter as int.
func RouteIntParam(r *http.Request, param string) int {
	vars := mux.Vars(r)
	value, err := strconv.Atoi(vars[param])
	if err != nil {
		return 0
	}

	if value < 0 {
		return 0
	}

	return value
}

// RouteStringParam returns an URL route parameter as string.
func RouteStringParam(r *http.Request, param string) string {
	vars := mux.Vars(r)
	return vars[param]
}

// QueryStringParam returns a query string parameter, or the default value
// when absent.
func QueryStringParam(r *http.Request, param, defaultValue string) string {
	value := r.URL.Query().Get(param)
	if value == "" {
		return defaultValue
	}
	return value
}

// QueryIntParam returns a query string parameter as int, or the default
// value when absent or malformed.
func QueryIntParam(r *http.Request, param string, defaultValue int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(param))
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

// FindClientIP returns the client address, preferring proxy headers.
func FindClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
