package model

import (
	"strings"
	"time"

	batchModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/model"
)

// Roles
const (
	RoleStudent   = "student"
	RoleTeacher   = "teacher"
	RoleSuperUser = "super_user"
)

// UserModel represents the users table. PhoneNumber is intentionally NOT
// unique: siblings share their guardian's number and log in as one merged
// session.
type UserModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PhoneNumber string `gorm:"size:11;not null;index" json:"phoneNumber"`
	FirstName   string `gorm:"size:100;not null" json:"firstName"`
	LastName    string `gorm:"size:100" json:"lastName"`
	Role        string `gorm:"type:varchar(20);not null;default:'student'" json:"role"`

	// Staff only; students authenticate with the shared passphrase.
	PasswordHash string `gorm:"size:255" json:"-"`

	Email         string `gorm:"size:255" json:"email"`
	GuardianPhone string `gorm:"size:11" json:"guardianPhone"`
	ProfileImage  string `gorm:"size:500" json:"profileImage"`
	SMSCount      int    `gorm:"not null;default:0;column:sms_count" json:"smsCount"`

	// Student-level extra fees on top of the batch monthly fee
	ExamFee   float64 `gorm:"not null;default:0" json:"examFee"`
	OthersFee float64 `gorm:"not null;default:0" json:"othersFee"`

	IsActive      bool       `gorm:"not null;default:true" json:"isActive"`
	IsArchived    bool       `gorm:"not null;default:false" json:"isArchived"`
	ArchivedAt    *time.Time `json:"archivedAt,omitempty"`
	ArchiveReason string     `gorm:"size:255" json:"archiveReason,omitempty"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Batches []batchModel.BatchModel `gorm:"many2many:batch_students;joinForeignKey:UserID;joinReferences:BatchID" json:"batches,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// CanAuthenticate is the archival invariant: an archived account never
// logs in, even while is_active is still true.
func (u *UserModel) CanAuthenticate() bool {
	return u.IsActive && !u.IsArchived
}
