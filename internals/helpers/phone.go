package helper

import "strings"

// NormalizePhone validates a Bangladeshi phone number and returns it in the
// canonical local form: 11 digits starting with "01". Country-code prefixes
// (880 / +880) and any separators are stripped. Returns "" when the input
// cannot be a valid number.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	phone := b.String()

	// "+8801XXXXXXXXX" carries the local leading zero inside the country
	// code, restore it after stripping "880".
	if strings.HasPrefix(phone, "880") && len(phone) > 11 {
		phone = phone[3:]
		if len(phone) == 10 && strings.HasPrefix(phone, "1") {
			phone = "0" + phone
		}
	}

	if len(phone) == 11 && strings.HasPrefix(phone, "01") {
		return phone
	}
	return ""
}
