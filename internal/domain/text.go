package domain

import "unicode/utf8"

// TruncateText 최대 n 바이트로 자르되 멀티바이트 문자 중간에서 끊지 않는다
func TruncateText(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
