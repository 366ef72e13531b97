package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	batchModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/school/batches/model"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
)

func TestBuildSessionUserSingleStudent(t *testing.T) {
	users := []userModel.UserModel{
		{
			ID:          1,
			PhoneNumber: "01712345678",
			FirstName:   "Rahim",
			LastName:    "Uddin",
			Role:        userModel.RoleStudent,
			Batches: []batchModel.BatchModel{
				{ID: 10, Name: "Class 9", IsActive: true},
			},
		},
	}

	su := BuildSessionUser(users)

	assert.Equal(t, uint(1), su.ID)
	assert.Equal(t, "Rahim Uddin", su.Name)
	assert.False(t, su.IsMultiStudent)
	assert.Nil(t, su.AllStudents)
	require.Len(t, su.Batches, 1)
	require.NotNil(t, su.BatchID)
	assert.Equal(t, uint(10), *su.BatchID)
}

func TestBuildSessionUserMergesSiblings(t *testing.T) {
	shared := batchModel.BatchModel{ID: 10, Name: "Class 9", IsActive: true}
	users := []userModel.UserModel{
		{
			ID: 1, PhoneNumber: "01712345678", FirstName: "Rahim", LastName: "Uddin",
			Role:    userModel.RoleStudent,
			Batches: []batchModel.BatchModel{shared, {ID: 11, Name: "Math Special", IsActive: true}},
		},
		{
			ID: 2, PhoneNumber: "01712345678", FirstName: "Karim", LastName: "Uddin",
			Role:    userModel.RoleStudent,
			Batches: []batchModel.BatchModel{shared, {ID: 12, Name: "English", IsActive: true}},
		},
	}

	su := BuildSessionUser(users)

	assert.Equal(t, "Rahim Uddin & Karim Uddin", su.Name)
	assert.Equal(t, "Rahim & Karim", su.FirstName)
	assert.True(t, su.IsMultiStudent)
	assert.Equal(t, uint(1), su.ID, "primary account is the first in query order")

	// Batch union keeps first-occurrence order and drops the duplicate.
	require.Len(t, su.Batches, 3)
	assert.Equal(t, uint(10), su.Batches[0].ID)
	assert.Equal(t, uint(11), su.Batches[1].ID)
	assert.Equal(t, uint(12), su.Batches[2].ID)
	require.NotNil(t, su.BatchID)
	assert.Equal(t, uint(10), *su.BatchID)

	require.Len(t, su.AllStudents, 2)
	assert.Equal(t, "Rahim Uddin", su.AllStudents[0].Name)
	assert.Len(t, su.AllStudents[0].Batches, 2)
	assert.Equal(t, "Karim Uddin", su.AllStudents[1].Name)
}

func TestBuildSessionUserSkipsInactiveBatches(t *testing.T) {
	users := []userModel.UserModel{
		{
			ID: 1, FirstName: "Rahim", Role: userModel.RoleStudent,
			Batches: []batchModel.BatchModel{
				{ID: 10, Name: "Closed", IsActive: false},
				{ID: 11, Name: "Open", IsActive: true},
			},
		},
	}

	su := BuildSessionUser(users)

	require.Len(t, su.Batches, 1)
	assert.Equal(t, uint(11), su.Batches[0].ID)
	require.NotNil(t, su.BatchID)
	assert.Equal(t, uint(11), *su.BatchID)
}

func TestBuildSessionUserStaffHasNoBatchPayload(t *testing.T) {
	users := []userModel.UserModel{
		{ID: 5, FirstName: "Teacher", Role: userModel.RoleTeacher},
	}

	su := BuildSessionUser(users)

	assert.Equal(t, userModel.RoleTeacher, su.Role)
	assert.Nil(t, su.Batches)
	assert.Nil(t, su.BatchID)
	assert.Nil(t, su.AllStudents)
}
