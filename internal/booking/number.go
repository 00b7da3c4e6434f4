package booking

import (
	"fmt"
	"math/rand"
)

const numberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// numberSuffixLen gives a 36^5 space; uniqueness is enforced by the
// database constraint, with the engine retrying on collision.
const numberSuffixLen = 5

// reservationNumber builds a number like "JPN-A43C7" from the location
// code and five random uppercase-alphanumeric characters.
func reservationNumber(rng *rand.Rand, locationCode string) string {
	suffix := make([]byte, numberSuffixLen)
	for i := range suffix {
		suffix[i] = numberAlphabet[rng.Intn(len(numberAlphabet))]
	}
	return fmt.Sprintf("%s-%s", locationCode, suffix)
}
