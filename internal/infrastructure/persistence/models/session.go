package models

import (
	"time"

	"github.com/badgekit/backend/internal/domain/session"
)

// SessionModel is the persistence model for session.Session. Its id is the
// platform's session id, not a uuid.
type SessionModel struct {
	ID          string     `gorm:"type:varchar(255);primaryKey"`
	Shop        string     `gorm:"type:varchar(255);not null;index:idx_sessions_shop"`
	State       string     `gorm:"type:varchar(255)"`
	IsOnline    bool       `gorm:"column:is_online;not null;default:false"`
	Scope       string     `gorm:"type:varchar(1024)"`
	Expires     *time.Time `gorm:"column:expires"`
	AccessToken string     `gorm:"column:access_token;type:text;not null"`
	UserID      *int64     `gorm:"column:user_id"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}

// ToDomain converts the persistence model to a domain Session.
func (m *SessionModel) ToDomain() *session.Session {
	return &session.Session{
		ID:          m.ID,
		Shop:        m.Shop,
		State:       m.State,
		IsOnline:    m.IsOnline,
		Scope:       m.Scope,
		Expires:     m.Expires,
		AccessToken: m.AccessToken,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// SessionModelFromDomain creates a persistence model from a domain Session.
func SessionModelFromDomain(s *session.Session) *SessionModel {
	return &SessionModel{
		ID:          s.ID,
		Shop:        s.Shop,
		State:       s.State,
		IsOnline:    s.IsOnline,
		Scope:       s.Scope,
		Expires:     s.Expires,
		AccessToken: s.AccessToken,
		UserID:      s.UserID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
