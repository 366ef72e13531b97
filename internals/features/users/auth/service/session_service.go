package service

import (
	"strings"

	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
)

/* ==========================
   Session payload types
========================== */

type SessionBatch struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	FeeAmount   float64 `json:"fee_amount"`
	IsActive    bool    `json:"is_active"`
}

// SessionStudent is one sibling's own view inside a merged session.
type SessionStudent struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	PhoneNumber string         `json:"phoneNumber"`
	Batches     []SessionBatch `json:"batches"`
}

// SessionUser is the unified session record for one phone number. With
// multiple student accounts on the same number it represents all of them
// at once.
type SessionUser struct {
	ID             uint             `json:"id"`
	Role           string           `json:"role"`
	Name           string           `json:"name"`
	FirstName      string           `json:"firstName"`
	LastName       string           `json:"lastName"`
	PhoneNumber    string           `json:"phoneNumber"`
	Email          string           `json:"email"`
	SMSCount       int              `json:"smsCount"`
	BatchID        *uint            `json:"batchId"`
	IsMultiStudent bool             `json:"isMultiStudent"`
	IsArchived     bool             `json:"isArchived"`
	Batches        []SessionBatch   `json:"batches,omitempty"`
	AllStudents    []SessionStudent `json:"allStudents,omitempty"`
}

/* ==========================
   Merge logic
========================== */

// BuildSessionUser merges the accounts sharing one phone number into a
// single session payload. users must be non-empty and in query order: the
// first account is the primary one, and merged names/batches keep that
// order (first occurrence wins on duplicate batches).
func BuildSessionUser(users []userModel.UserModel) SessionUser {
	primary := users[0]

	name := primary.FullName()
	firstName := primary.FirstName
	if len(users) > 1 {
		fullNames := make([]string, 0, len(users))
		firstNames := make([]string, 0, len(users))
		for _, u := range users {
			fullNames = append(fullNames, u.FullName())
			firstNames = append(firstNames, u.FirstName)
		}
		name = strings.Join(fullNames, " & ")
		firstName = strings.Join(firstNames, " & ")
	}

	su := SessionUser{
		ID:             primary.ID,
		Role:           primary.Role,
		Name:           name,
		FirstName:      firstName,
		LastName:       primary.LastName,
		PhoneNumber:    primary.PhoneNumber,
		Email:          primary.Email,
		SMSCount:       primary.SMSCount,
		IsMultiStudent: len(users) > 1,
		IsArchived:     primary.IsArchived,
	}

	if primary.Role != userModel.RoleStudent {
		return su
	}

	// Union of active batches across all siblings, de-duplicated by id.
	seen := make(map[uint]struct{})
	merged := make([]SessionBatch, 0)
	allStudents := make([]SessionStudent, 0, len(users))

	for _, student := range users {
		own := make([]SessionBatch, 0, len(student.Batches))
		for _, b := range student.Batches {
			if !b.IsActive {
				continue
			}
			sb := SessionBatch{
				ID:          b.ID,
				Name:        b.Name,
				Description: b.Description,
				FeeAmount:   b.FeeAmount,
				IsActive:    b.IsActive,
			}
			own = append(own, sb)
			if _, dup := seen[b.ID]; !dup {
				seen[b.ID] = struct{}{}
				merged = append(merged, sb)
			}
		}
		allStudents = append(allStudents, SessionStudent{
			ID:          student.ID,
			Name:        student.FullName(),
			FirstName:   student.FirstName,
			LastName:    student.LastName,
			PhoneNumber: student.PhoneNumber,
			Batches:     own,
		})
	}

	su.Batches = merged
	if len(merged) > 0 {
		su.BatchID = &merged[0].ID
	}
	if su.IsMultiStudent {
		su.AllStudents = allStudents
	}
	return su
}
