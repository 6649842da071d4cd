package session

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
)

// RecoverUserID 盡力從 JWT 形狀的 token payload 段還原使用者識別。
// 契約：永不 panic、永不回傳 error；解不出來就回傳 ("", false)。
// 依序嘗試 id、_id、sub 三個 claim。
func RecoverUserID(token string) (string, bool) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return "", false
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return "", false
	}

	var claims map[string]interface{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", false
	}

	for _, key := range []string{"id", "_id", "sub"} {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v, true
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), true
		}
	}

	return "", false
}
