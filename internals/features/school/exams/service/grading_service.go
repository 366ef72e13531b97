package service

// GradeForPercentage maps a percentage to its letter grade and GPA. The
// same bands apply to a single subject mark and to a monthly total; band
// lower bounds are inclusive (exactly 80 is A+).
func GradeForPercentage(p float64) (string, float64) {
	switch {
	case p >= 80:
		return "A+", 5.0
	case p >= 70:
		return "A", 4.0
	case p >= 60:
		return "A-", 3.5
	case p >= 50:
		return "B", 3.0
	case p >= 40:
		return "C", 2.0
	default:
		return "F", 0.0
	}
}
