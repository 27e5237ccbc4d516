package parse

import (
	"encoding/json"
	"strings"
)

// Features decodes a JSON-encoded string array. A comma separated list is
// accepted as a fallback; anything else yields nil.
func Features(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var out []string
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil
		}
		return compact(out)
	}
	return compact(strings.Split(s, ","))
}

// EncodeFeatures is the inverse of Features.
func EncodeFeatures(features []string) string {
	b, err := json.Marshal(compact(features))
	if err != nil {
		return "[]"
	}
	return string(b)
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
