package api

import (
	"math/rand"
	"regexp"
	"strings"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 8

// generateBattleCode creates a short alphanumeric code identifying a
// battle session.
func generateBattleCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

var battleCodeRegex = regexp.MustCompile("^[A-Z0-9]{8}$")

func normalizeBattleCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
