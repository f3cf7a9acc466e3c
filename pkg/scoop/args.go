package scoop

import (
	"strings"

	"github.com/arc-language/appanvil/pkg/catalog"
)

// InstallArgs builds the scoop arguments for installing m.
func InstallArgs(m catalog.ScoopMapping) []string {
	return []string{"install", m.PackageID}
}

// BucketAddArgs builds the scoop arguments for adding bucket.
func BucketAddArgs(bucket string) []string {
	return []string{"bucket", "add", bucket}
}

// NeedsBucket reports whether bucket has to be added before installing from
// it.
func NeedsBucket(bucket string) bool {
	bucket = strings.TrimSpace(bucket)
	return bucket != "" && !strings.EqualFold(bucket, DefaultBucket)
}

// BucketSet tracks the buckets already added during one script, in the order
// they were first seen.
type BucketSet struct {
	order []string
	seen  map[string]bool
}

// NewBucketSet returns an empty set.
func NewBucketSet() *BucketSet {
	return &BucketSet{seen: make(map[string]bool)}
}

// Add records bucket and reports whether it still needs a bucket-add step,
// which is true only the first time a non-default bucket is seen.
func (s *BucketSet) Add(bucket string) bool {
	if !NeedsBucket(bucket) {
		return false
	}
	key := strings.ToLower(strings.TrimSpace(bucket))
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.order = append(s.order, strings.TrimSpace(bucket))
	return true
}

// Buckets returns the added buckets in first-seen order.
func (s *BucketSet) Buckets() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
