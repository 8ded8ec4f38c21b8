package auth

import (
	"regexp"
	"strings"
)

// User is the public identity held in a session. It never carries the
// password.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credential is a stored registration record. Email is unique among records.
type Credential struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User strips the password from a credential record.
func (c *Credential) User() User {
	return User{ID: c.ID, Name: c.Name, Email: c.Email}
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Result mirrors the {success, message} envelope the storefront surfaces as
// a banner.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

// Validate reports per-field validation problems, keyed by field name so the
// form can render them inline.
func (r *RegisterRequest) Validate() map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		problems["name"] = "name is required"
	}
	if !emailPattern.MatchString(r.Email) {
		problems["email"] = "a valid email is required"
	}
	if len(r.Password) < minPasswordLen {
		problems["password"] = "password must be at least 6 characters"
	}
	return problems
}

// Validate reports per-field validation problems.
func (r *LoginRequest) Validate() map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(r.Email) == "" {
		problems["email"] = "email is required"
	}
	if r.Password == "" {
		problems["password"] = "password is required"
	}
	return problems
}
