package model

// Role is the type of a role.
type Role string

const (
	// RoleHost is the HOST role.
	RoleHost Role = "HOST"
	// RoleAdmin is the ADMIN role.
	RoleAdmin Role = "ADMIN"
	// RoleUser is the USER role.
	RoleUser Role = "USER"
)

func (e Role) String() string {
	switch e {
	case RoleHost:
		return "HOST"
	case RoleAdmin:
		return "ADMIN"
	case RoleUser:
		return "USER"
	}
	return "USER"
}

type User struct {
	ID int `json:"id"`

	RowStatus RowStatus `json:"row_status"`
	CreatedTs int64     `json:"created_ts"`
	UpdatedTs int64     `json:"updated_ts"`

	Username     string `json:"username"`
	Role         Role   `json:"role"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	PasswordHash string `json:"password_hash"`
	AvatarURL    string `json:"avatar_url"`
	LastLoginTs  int64  `json:"last_login_ts"`
}

type FindUser struct {
	ID        *int       `json:"id"`
	RowStatus *RowStatus `json:"row_status"`
	Username  *string    `json:"username"`
	Role      *Role      `json:"role"`
	Email     *string    `json:"email"`

	// The maximum number of users to return.
	Limit *int
}

type UserSignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	// AdminCode promotes the new account to ADMIN when it matches the
	// configured admin code.
	AdminCode string `json:"admin_code"`
}

type UserSigninRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	NeverExpire bool   `json:"never_expire"`
}

type UserProfileUpdateRequest struct {
	Nickname  *string `json:"nickname"`
	AvatarURL *string `json:"avatar_url"`
}

// UserUpdateRequest is the admin-side update: role changes and bans.
// Banning is archiving the row, an archived user fails authentication.
type UserUpdateRequest struct {
	Role      *Role      `json:"role"`
	RowStatus *RowStatus `json:"row_status"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
