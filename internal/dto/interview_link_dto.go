package dto

import (
	"strings"
	"time"

	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/util"
)

const (
	MinExpiresInDays     = 1
	MaxExpiresInDays     = 30
	DefaultExpiresInDays = 7
)

type CreateLinkRequest struct {
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
	Position       string `json:"position"`
	Topic          string `json:"topic"`
	ExpiresInDays  int    `json:"expires_in_days"`
	SendEmail      bool   `json:"send_email"`
}

// Validate also normalizes: a zero ExpiresInDays becomes the default before
// the range check.
func (r *CreateLinkRequest) Validate() error {
	errs := map[string]string{}
	r.CandidateName = strings.TrimSpace(r.CandidateName)
	r.CandidateEmail = strings.TrimSpace(strings.ToLower(r.CandidateEmail))
	r.Position = strings.TrimSpace(r.Position)
	r.Topic = strings.TrimSpace(r.Topic)

	if r.CandidateName == "" {
		errs["candidate_name"] = "Candidate name is required"
	}
	if !validEmail(r.CandidateEmail) {
		errs["candidate_email"] = "A valid candidate email is required"
	}
	if r.Position == "" {
		errs["position"] = "Position is required"
	}
	if r.Topic == "" {
		errs["topic"] = "Interview topic is required"
	}
	if r.ExpiresInDays == 0 {
		r.ExpiresInDays = DefaultExpiresInDays
	}
	if r.ExpiresInDays < MinExpiresInDays || r.ExpiresInDays > MaxExpiresInDays {
		errs["expires_in_days"] = "Expiry must be between 1 and 30 days"
	}
	if len(errs) > 0 {
		return util.NewFormError("Validation failed", errs)
	}
	return nil
}

type UpdateLinkRequest struct {
	CandidateName *string `json:"candidate_name"`
	Position      *string `json:"position"`
	Topic         *string `json:"topic"`
	ExpiresInDays *int    `json:"expires_in_days"`
}

func (r *UpdateLinkRequest) Validate() error {
	errs := map[string]string{}
	if r.CandidateName != nil && strings.TrimSpace(*r.CandidateName) == "" {
		errs["candidate_name"] = "Candidate name cannot be blank"
	}
	if r.Position != nil && strings.TrimSpace(*r.Position) == "" {
		errs["position"] = "Position cannot be blank"
	}
	if r.Topic != nil && strings.TrimSpace(*r.Topic) == "" {
		errs["topic"] = "Topic cannot be blank"
	}
	if r.ExpiresInDays != nil && (*r.ExpiresInDays < MinExpiresInDays || *r.ExpiresInDays > MaxExpiresInDays) {
		errs["expires_in_days"] = "Expiry must be between 1 and 30 days"
	}
	if len(errs) > 0 {
		return util.NewFormError("Validation failed", errs)
	}
	return nil
}

// LinkResponse is the HR-facing view of a link, including the shareable URL.
type LinkResponse struct {
	*model.InterviewLink
	InterviewURL string `json:"interview_url"`
	Expired      bool   `json:"expired"`
}

func NewLinkResponse(link *model.InterviewLink, baseURL string, now time.Time) *LinkResponse {
	return &LinkResponse{
		InterviewLink: link,
		InterviewURL:  baseURL + "/interview/" + link.Token,
		Expired:       link.IsExpired(now),
	}
}

// ValidateLinkResponse is the public, pre-session view: enough for the
// candidate page to render a welcome screen, nothing more.
type ValidateLinkResponse struct {
	Valid         bool   `json:"valid"`
	Expired       bool   `json:"expired"`
	CandidateName string `json:"candidate_name,omitempty"`
	Position      string `json:"position,omitempty"`
	Topic         string `json:"topic,omitempty"`
	Company       string `json:"company,omitempty"`
	Reason        string `json:"reason,omitempty"`
}
