package response

import (
	"github.com/bookwell/bookwell/model"
)

// UserResponse strips the password hash before a user leaves the server.
func UserResponse(user *model.User) *model.User {
	return &model.User{
		ID:          user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Email:       user.Email,
		Nickname:    user.Nickname,
		AvatarURL:   user.AvatarURL,
		LastLoginTs: user.LastLoginTs,
	}
}

func UserListResponse(users []*model.User) []*model.User {
	var response []*model.User
	for _, user := range users {
		response = append(response, UserResponse(user))
	}
	return response
}
