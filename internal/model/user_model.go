package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleHR        Role = "hr"
	RoleAdmin     Role = "admin"
)

// ParseRole rejects anything outside the known set so authorization checks
// stay exhaustive.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCandidate, RoleHR, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	HashedPassword string     `gorm:"type:varchar(255)" json:"-"`
	FullName       string     `gorm:"type:varchar(255)" json:"full_name"`
	Role           Role       `gorm:"type:varchar(20)" json:"role"`
	CompanyName    string     `gorm:"type:varchar(255)" json:"company_name"`
	Status         string     `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedBy      *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
