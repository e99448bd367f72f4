package usersrepobridge

import "github.com/jrazmi/tasker/core/repositories/usersrepo"

// User is the public projection of an account. It never carries the hash.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

func MarshalToBridge(u usersrepo.User) User {
	return User{
		ID:       u.UserID,
		Username: u.Username,
		Email:    u.Email,
	}
}
