package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain local", "01712345678", "01712345678"},
		{"spaces and dashes", "017-1234 5678", "01712345678"},
		{"country code with plus", "+8801712345678", "01712345678"},
		{"country code without plus", "8801712345678", "01712345678"},
		{"country code short form", "+8801700000001", "01700000001"},
		{"too short", "0171234567", ""},
		{"too long", "017123456789", ""},
		{"wrong prefix", "02712345678", ""},
		{"letters only", "abc", ""},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePhone(tc.in))
		})
	}
}
