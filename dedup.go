package wastesort

import (
	"image"
	"math"
	"sync"

	"github.com/corona10/goimagehash"
)

// hashBits is the size of a goimagehash difference hash.
const hashBits = 64

// SimilarityIndex remembers difference hashes of analyzed images so a
// re-uploaded (or slightly re-encoded) image can reuse its stored analysis
// instead of being processed again. Safe for concurrent use.
type SimilarityIndex struct {
	mu          sync.Mutex
	maxDistance int
	entries     []similarityEntry
}

type similarityEntry struct {
	hash *goimagehash.ImageHash
	key  string
}

// NewSimilarityIndex builds an index from a similarity threshold in (0,1]:
// 1.0 demands a bit-identical hash, the default 0.8 tolerates up to 20% of
// the 64 hash bits differing.
func NewSimilarityIndex(threshold float64) *SimilarityIndex {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSimilarityThreshold
	}
	return &SimilarityIndex{
		maxDistance: int(math.Round((1 - threshold) * hashBits)),
	}
}

// Lookup returns the key of a previously remembered image perceptually
// identical to img. Hashing failures report a miss: a corrupt frame only
// costs a redundant analysis, never an error.
func (s *SimilarityIndex) Lookup(img image.Image) (string, bool) {
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		dist, err := hash.Distance(e.hash)
		if err == nil && dist <= s.maxDistance {
			return e.key, true
		}
	}
	return "", false
}

// Remember stores img's hash under key (typically the image's perceptual
// hash string used as the persistence key). Hashing failures are ignored.
func (s *SimilarityIndex) Remember(img image.Image, key string) {
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, similarityEntry{hash: hash, key: key})
}

// Len returns the number of remembered images.
func (s *SimilarityIndex) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
