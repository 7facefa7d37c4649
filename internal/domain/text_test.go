package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"짧은 문자열은 그대로", "card declined", 500, "card declined"},
		{"ASCII 는 바이트 단위", "abcdef", 4, "abcd"},
		{"멀티바이트 문자 경계에서 자름", "카드거절", 7, "카드"},
		{"경계가 맞으면 그대로", "카드거절", 6, "카드"},
		{"0 이하", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateText(tt.in, tt.n))
		})
	}

	long := strings.Repeat("ব্যাংক ", 100)
	got := TruncateText(long, 500)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), 500)
}
