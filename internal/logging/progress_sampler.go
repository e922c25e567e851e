package logging

// ProgressSampler thins repetitive progress logs to one line per percentage
// bucket.
type ProgressSampler struct {
	bucketSize float64
	lastBucket int
}

// NewProgressSampler constructs a sampler that emits when progress crosses a
// bucket boundary (default 25%).
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 25
	}
	return &ProgressSampler{bucketSize: bucketSize, lastBucket: -1}
}

// ShouldLog reports whether completed out of total reaches a new bucket.
// Completion of the final item always lands in the last bucket.
func (s *ProgressSampler) ShouldLog(completed, total int) bool {
	if s == nil {
		return true
	}
	if total <= 0 || completed < 0 {
		return false
	}
	percent := float64(completed) * 100 / float64(total)
	bucket := int(percent / s.bucketSize)
	if completed >= total {
		bucket = int(100 / s.bucketSize)
	}
	if bucket > s.lastBucket {
		s.lastBucket = bucket
		return true
	}
	return false
}

// Reset clears the sampler state (e.g. when a new run starts).
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.lastBucket = -1
}
