package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserSessionModel is the server-side session record. The login response
// token is a JWT carrying this row's ID; middleware resolves the token back
// to the row, so logout (row delete) invalidates the token immediately.
//
// Payload holds the merged multi-account session user exactly as returned
// to the client.
type UserSessionModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Role      string         `gorm:"type:varchar(20);not null" json:"role"`
	Payload   datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	UserAgent string         `gorm:"size:500" json:"user_agent,omitempty"`
	IP        string         `gorm:"size:45" json:"ip,omitempty"`
	ExpiresAt time.Time      `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (UserSessionModel) TableName() string {
	return "user_sessions"
}
