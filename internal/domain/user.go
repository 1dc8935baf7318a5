package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserSummary is the public view of a user. It never carries the password hash.
type UserSummary struct {
	ID       uint   `json:"id"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	RoleID   uint   `json:"roleId"`
	RoleName string `json:"roleName"`
}

// UserWithCredentials is only produced by the lookup used for login and
// password recovery.
type UserWithCredentials struct {
	UserSummary
	PasswordHash string `json:"-"`
}

type NewUser struct {
	UserName     string
	Email        string
	PasswordHash string
	RoleID       uint
}
