package model

import (
	"errors"
	"time"
)

var (
	ErrLinkExpired   = errors.New("interview link has expired")
	ErrLinkCompleted = errors.New("interview has already been completed")
	ErrLinkStarted   = errors.New("interview session already in progress")
)

// LinkMutation is a typed state change applied through ApplyLinkMutation.
// Guards live here so the link state machine can be tested without a
// database.
type LinkMutation interface {
	apply(l *InterviewLink, now time.Time) error
}

func ApplyLinkMutation(l *InterviewLink, m LinkMutation, now time.Time) error {
	if err := m.apply(l, now); err != nil {
		return err
	}
	l.UpdatedAt = now
	return nil
}

// MarkSent records one more invitation email. Resending never extends
// expiry.
type MarkSent struct{}

func (MarkSent) apply(l *InterviewLink, now time.Time) error {
	l.SentCount++
	return nil
}

// StartSession attaches the generated questions and the candidate's session
// info. A second start on a link that was started but never completed is
// rejected unless Restart is set; the caller decides whether discarding
// in-progress questions is acceptable.
type StartSession struct {
	Questions      QuestionList
	CandidateName  string
	CandidateEmail string
	Restart        bool
}

func (m StartSession) apply(l *InterviewLink, now time.Time) error {
	if l.Completed {
		return ErrLinkCompleted
	}
	if l.IsExpired(now) {
		return ErrLinkExpired
	}
	if l.IsStarted() && !m.Restart {
		return ErrLinkStarted
	}
	l.Questions = m.Questions
	l.SessionName = m.CandidateName
	l.SessionEmail = m.CandidateEmail
	started := now
	l.StartedAt = &started
	return nil
}

// MarkCompleted is monotonic: once a link completes it never goes back.
type MarkCompleted struct{}

func (MarkCompleted) apply(l *InterviewLink, now time.Time) error {
	if l.Completed {
		return ErrLinkCompleted
	}
	if l.IsExpired(now) {
		return ErrLinkExpired
	}
	l.Completed = true
	completed := now
	l.CompletedAt = &completed
	return nil
}
