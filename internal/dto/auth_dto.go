package dto

import (
	"regexp"
	"strings"

	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/util"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	CompanyName string `json:"company_name"`
}

func (r *RegisterRequest) Validate() error {
	errs := map[string]string{}
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if !validEmail(r.Email) {
		errs["email"] = "A valid email address is required"
	}
	if len(r.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters"
	}
	if strings.TrimSpace(r.FullName) == "" {
		errs["full_name"] = "Full name is required"
	}
	if _, ok := model.ParseRole(r.Role); !ok {
		errs["role"] = "Role must be one of: candidate, hr, admin"
	}
	if len(errs) > 0 {
		return util.NewFormError("Validation failed", errs)
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	errs := map[string]string{}
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if !validEmail(r.Email) {
		errs["email"] = "A valid email address is required"
	}
	if r.Password == "" {
		errs["password"] = "Password is required"
	}
	if len(errs) > 0 {
		return util.NewFormError("Validation failed", errs)
	}
	return nil
}

type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	User        *model.User `json:"user"`
}
