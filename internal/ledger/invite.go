package ledger

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	inviteAlphabet   = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	inviteCodeLength = 6
	inviteAttempts   = 10
)

// newInviteCode draws a code from an alphabet without I and O.
func newInviteCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(inviteAlphabet)))

	var sb strings.Builder
	sb.Grow(inviteCodeLength)
	for range inviteCodeLength {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		sb.WriteByte(inviteAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// normalizeInviteCode accepts codes typed in lowercase or with surrounding space.
func normalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
