package dto

import (
	"strings"

	"github.com/hiresphere/api/internal/util"
)

type CreateCandidateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	Notes    string `json:"notes"`
}

func (r *CreateCandidateRequest) Validate() error {
	errs := map[string]string{}
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Name == "" {
		errs["name"] = "Name is required"
	}
	if !validEmail(r.Email) {
		errs["email"] = "A valid email address is required"
	}
	if len(errs) > 0 {
		return util.NewFormError("Validation failed", errs)
	}
	return nil
}

type UpdateCandidateRequest struct {
	Name     *string `json:"name"`
	Position *string `json:"position"`
	Notes    *string `json:"notes"`
	Status   *string `json:"status"`
}

func (r *UpdateCandidateRequest) Validate() error {
	errs := map[string]string{}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs["name"] = "Name cannot be blank"
	}
	if len(errs) > 0 {
		return util.NewFormError("Validation failed", errs)
	}
	return nil
}
