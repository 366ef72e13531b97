package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeForPercentage(t *testing.T) {
	cases := []struct {
		pct   float64
		grade string
		gpa   float64
	}{
		{100, "A+", 5.0},
		{80, "A+", 5.0},
		{79.99, "A", 4.0},
		{70, "A", 4.0},
		{60, "A-", 3.5},
		{50, "B", 3.0},
		{40, "C", 2.0},
		{39.99, "F", 0.0},
		{0, "F", 0.0},
	}
	for _, tc := range cases {
		grade, gpa := GradeForPercentage(tc.pct)
		assert.Equal(t, tc.grade, grade, "pct=%v", tc.pct)
		assert.Equal(t, tc.gpa, gpa, "pct=%v", tc.pct)
	}
}
