package travel

import (
	"crypto/rand"
	"math/big"
)

// pnrAlphabet excludes look-alike characters (I, O, 0, 1) so a record
// locator read over the phone survives the round trip.
const pnrAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// PNRLength is the length of a generated record locator.
const PNRLength = 6

// NewPNR generates a random six-character record locator.
func NewPNR() string {
	buf := make([]byte, PNRLength)
	max := big.NewInt(int64(len(pnrAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform is broken;
			// fall back to a fixed character rather than panic.
			buf[i] = pnrAlphabet[0]
			continue
		}
		buf[i] = pnrAlphabet[n.Int64()]
	}
	return string(buf)
}
