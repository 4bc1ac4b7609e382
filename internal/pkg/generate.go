package pkg

import (
	"crypto/rand"
	"math/big"
)

// CodeLength is the width of a room code. Five characters over a 32-rune
// alphabet leaves the code space far larger than any realistic number of
// concurrent rooms.
const CodeLength = 5

// codeAlphabet skips I, O, 0 and 1 so codes stay unambiguous when read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRoomCode - returns a random room code. Uniqueness against live
// rooms is the registry's job; the generator only samples the alphabet.
func GenerateRoomCode() string {
	b := make([]byte, CodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			b[i] = codeAlphabet[0]
			continue
		}
		b[i] = codeAlphabet[n.Int64()]
	}

	return string(b)
}
