// Package export converts logged requests into formats other tools read.
package export

import (
	"strings"

	"github.com/sadopc/reqlog/internal/core/history"
)

// AsCurl converts a logged request to a curl command string that replays
// it. A JSON payload is sent with a matching Content-Type header.
func AsCurl(r history.Record) string {
	parts := []string{"curl"}

	method := strings.ToUpper(r.Method)
	if method != "" && method != "GET" {
		parts = append(parts, "-X", method)
	}

	if r.Payload.Present() {
		parts = append(parts,
			"-H", shellQuote("Content-Type: application/json"),
			"-d", shellQuote(string(r.Payload.Raw)),
		)
	}

	parts = append(parts, shellQuote(r.FullURL))
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
