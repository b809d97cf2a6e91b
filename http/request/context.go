package request

import (
	"net/http"

	"github.com/bookwell/bookwell/model"
)

type ContextKey int

const (
	ClientIPContextKey ContextKey = iota
	UserIDContextKey
	UserNameContextKey
	UserRolesContextKey
)

func getContextStringValue(r *http.Request, key ContextKey) string {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(string); valid {
			return value
		}
	}
	return ""
}

func getContextIntValue(r *http.Request, key ContextKey) int {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(int); valid {
			return value
		}
	}
	return 0
}

// GetUserID returns the authenticated user ID stored in the context, 0 when
// the request is unauthenticated.
func GetUserID(r *http.Request) int {
	return getContextIntValue(r, UserIDContextKey)
}

func GetUsername(r *http.Request) string {
	return getContextStringValue(r, UserNameContextKey)
}

func GetUserRole(r *http.Request) model.Role {
	return (model.Role)(getContextStringValue(r, UserRolesContextKey))
}
