package utils

import (
	"math/rand"

	"dinodb/pkg/rid"
)

// KeyRidPair is a (key, RecordId) pair used to build test fixtures.
type KeyRidPair struct {
	Key int64
	Rid rid.RecordId
}

// GenerateRandomKeyRidPairs generates n pairs with unique keys and
// pseudo-random RecordIds. Returns the pairs and a map from key to the
// expected RecordId, for convenient lookups in test assertions.
func GenerateRandomKeyRidPairs(n int64) ([]KeyRidPair, map[int64]rid.RecordId) {
	pairs := make([]KeyRidPair, n)
	answerKey := make(map[int64]rid.RecordId, n)
	for i := range n {
	genKey:
		key := rand.Int63()
		if _, ok := answerKey[key]; ok {
			goto genKey
		}
		r := rid.New(rand.Int63(), rand.Int31())
		answerKey[key] = r
		pairs[i] = KeyRidPair{Key: key, Rid: r}
	}
	return pairs, answerKey
}
