package v1

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bookwell/bookwell/api/auth"
	"github.com/bookwell/bookwell/config"
	"github.com/bookwell/bookwell/http/response"
	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"github.com/bookwell/bookwell/validator"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var signin model.UserSigninRequest
	if err := json.NewDecoder(r.Body).Decode(&signin); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	user, err := h.store.GetUser(&model.FindUser{Username: &signin.Username})
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	if user == nil {
		log.Warn("User not found")
		response.NotFound(w, r)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(signin.Password))
	if err != nil {
		log.Error("Failed to compare password", zap.Error(err))
		response.BadRequest(w, r, errors.New("Invalid password"))
		return
	}

	expireTime := time.Now().Add(auth.AccessTokenDuration)
	if signin.NeverExpire {
		// Set the expire time to 100 years.
		expireTime = time.Now().Add(100 * 365 * 24 * time.Hour)
	}
	if err := h.doSignIn(w, r, user, expireTime); err != nil {
		log.Error("Failed to sign in", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	if err := h.store.SetLastLogin(user.ID); err != nil {
		log.Error("Failed to update last login", zap.Error(err))
	}

	response.OK(w, r, response.UserResponse(user))
}

func (h *Handler) doSignIn(w http.ResponseWriter, r *http.Request, user *model.User, expireTime time.Time) error {
	sSetting, err := h.store.GetOrUpsetSystemSecuritySetting()
	if err != nil {
		log.Error("Failed to get security setting", zap.Error(err))
		return err
	}
	if sSetting.JWTSecret == "" {
		log.Error("JWT secret is not set")
		return errors.New("JWT secret is not set")
	}

	accessToken, err := auth.GenerateAccessToken(user.Username, user.ID, expireTime, []byte(sSetting.JWTSecret))
	if err != nil {
		log.Error("Failed to generate access token", zap.Error(err))
		return err
	}

	cookie, err := h.buildAccessTokenCookie(accessToken, expireTime, r.Header.Get("Origin"))
	if err != nil {
		return errors.Wrap(err, "failed to build access token cookie")
	}
	w.Header().Set("Set-Cookie", cookie)
	return nil
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	generalSetting, err := h.store.GetSystemGeneralSetting()
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("Failed to get general system setting")
			response.ServerError(w, r, err)
			return
		}
	}

	// Check if signup is disabled
	if generalSetting != nil && generalSetting.DisableSignup {
		log.Debug("Signup is disabled")
		response.Forbidden(w, r)
		return
	}

	signup := &model.UserSignupRequest{}
	if err := json.NewDecoder(r.Body).Decode(&signup); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if err := validator.ValidateSignupRequest(h.store, signup); err != nil {
		log.Error("Failed to validate signup request", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to generate password hash")
		response.ServerError(w, r, err)
		return
	}

	// The first account becomes the host. A matching admin code promotes
	// later signups to ADMIN.
	newRole := model.RoleUser
	hostType := model.RoleHost
	existedHostUser, err := h.store.GetUser(&model.FindUser{Role: &hostType})
	if err != nil {
		log.Error("Failed to get users", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if existedHostUser == nil {
		newRole = model.RoleHost
	} else if signup.AdminCode != "" && config.Opts.AdminCode != "" && signup.AdminCode == config.Opts.AdminCode {
		newRole = model.RoleAdmin
	}

	user := model.User{
		Username:     signup.Username,
		Email:        signup.Email,
		Nickname:     signup.Nickname,
		PasswordHash: string(passwordHash),
		Role:         newRole,
	}

	newUser, err := h.store.CreateUser(&user)
	if err != nil {
		log.Error("Failed to signup user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	// Store user in cache
	h.store.UserCache.Store(newUser.ID, newUser)

	response.Created(w, r, response.UserResponse(newUser))
}

func (h *Handler) buildAccessTokenCookie(accessToken string, expireTime time.Time, origin string) (string, error) {
	attrs := []string{
		fmt.Sprintf("%s=%s", auth.AccessTokenCookieName, accessToken),
		"Path=/",
		"HttpOnly",
	}
	if expireTime.IsZero() {
		attrs = append(attrs, "Expires=Thu, 01 Jan 1970 00:00:00 GMT")
	} else {
		attrs = append(attrs, "Expires="+expireTime.Format(time.RFC1123))
	}

	if strings.HasPrefix(origin, "https://") {
		attrs = append(attrs, "Secure")
		attrs = append(attrs, "SameSite=None")
	} else {
		attrs = append(attrs, "SameSite=Lax")
	}
	return strings.Join(attrs, "; "), nil
}
