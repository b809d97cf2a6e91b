package v1

import (
	"encoding/json"
	"net/http"

	"github.com/bookwell/bookwell/http/request"
	"github.com/bookwell/bookwell/http/response"
	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	if request.GetUserRole(r) != model.RoleHost && request.GetUserRole(r) != model.RoleAdmin {
		log.Error("Unauthorized request by", zap.String("role", request.GetUserRole(r).String()),
			zap.String("username", request.GetUsername(r)))
		response.Forbidden(w, r)
		return
	}

	users, err := h.store.ListUsers(&model.FindUser{})
	if err != nil {
		log.Error("Failed to list users", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, response.UserListResponse(users))
}

// updateUser promotes, demotes or bans an account. The HOST account is
// immutable and HOST cannot be granted.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	if request.GetUserRole(r) != model.RoleHost && request.GetUserRole(r) != model.RoleAdmin {
		log.Error("Unauthorized request by", zap.String("role", request.GetUserRole(r).String()),
			zap.String("username", request.GetUsername(r)))
		response.Forbidden(w, r)
		return
	}
	userID := request.RouteIntParam(r, "id")

	update := &model.UserUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(update); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	if v := update.Role; v != nil && *v != model.RoleAdmin && *v != model.RoleUser {
		response.BadRequest(w, r, errors.Errorf("invalid role: %s", *v))
		return
	}
	if v := update.RowStatus; v != nil && *v != model.Normal && *v != model.Archived {
		response.BadRequest(w, r, errors.Errorf("invalid row status: %s", *v))
		return
	}

	user, err := h.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.NotFound(w, r)
		return
	}
	if user.Role == model.RoleHost {
		response.Forbidden(w, r)
		return
	}

	updated, err := h.store.UpdateUser(userID, update)
	if err != nil {
		log.Error("Failed to update user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, response.UserResponse(updated))
}

func (h *Handler) getMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	user, err := h.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, response.UserResponse(user))
}

func (h *Handler) updateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)

	update := &model.UserProfileUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(update); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	user, err := h.store.UpdateUserProfile(userID, update)
	if err != nil {
		log.Error("Failed to update profile", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, response.UserResponse(user))
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)

	req := &model.ChangePasswordRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	if len(req.NewPassword) < 6 {
		response.BadRequest(w, r, errors.New("password is too short"))
		return
	}

	user, err := h.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil || user == nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		response.BadRequest(w, r, errors.New("Invalid password"))
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to generate password hash", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if err := h.store.UpdateUserPassword(userID, string(passwordHash)); err != nil {
		log.Error("Failed to update password", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}
