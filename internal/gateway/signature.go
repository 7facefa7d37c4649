package gateway

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidSignature verify_sign 누락 또는 불일치
var ErrInvalidSignature = errors.New("notification signature is invalid")

// 서명 범위에 반드시 포함돼야 하는 필드
var requiredSignedFields = []string{"tran_id", "status"}

// VerifySignature IPN 서명 검증.
// verify_key 에 나열된 필드와 md5(store_passwd) 를 키 순으로 "k=v&..." 로 이어 붙인 뒤
// md5 를 verify_sign 과 비교한다.
func VerifySignature(n *Notification, storePassword string) error {
	if n.VerifySign == "" || n.VerifyKey == "" {
		return fmt.Errorf("%w: verify_sign or verify_key missing", ErrInvalidSignature)
	}

	signed := make(map[string]string)
	for _, key := range strings.Split(n.VerifyKey, ",") {
		key = strings.TrimSpace(key)
		if key == "" || key == "store_passwd" {
			continue
		}
		signed[key] = n.rawValue(key)
	}
	for _, key := range requiredSignedFields {
		if _, ok := signed[key]; !ok {
			return fmt.Errorf("%w: %s is not signed", ErrInvalidSignature, key)
		}
	}
	signed["store_passwd"] = md5Hex(storePassword)

	keys := make([]string, 0, len(signed))
	for key := range signed {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(signed[key])
	}

	want := md5Hex(b.String())
	got := strings.ToLower(strings.TrimSpace(n.VerifySign))
	if subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
		return ErrInvalidSignature
	}
	return nil
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
