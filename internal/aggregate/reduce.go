package aggregate

import (
	"math"
	"sort"
)

// MaxBy returns the item with the largest value. Equal values resolve to
// the lexicographically smaller key. ok is false for an empty input.
func MaxBy[T any](items []T, key func(T) string, value func(T) float64) (best T, bestValue float64, ok bool) {
	return extremeBy(items, key, value, func(a, b float64) bool { return a > b })
}

// MinBy is MaxBy for the smallest value.
func MinBy[T any](items []T, key func(T) string, value func(T) float64) (best T, bestValue float64, ok bool) {
	return extremeBy(items, key, value, func(a, b float64) bool { return a < b })
}

func extremeBy[T any](items []T, key func(T) string, value func(T) float64, better func(a, b float64) bool) (T, float64, bool) {
	var (
		best      T
		bestKey   string
		bestValue float64
		found     bool
	)
	for _, item := range items {
		v := value(item)
		k := key(item)
		if !found || better(v, bestValue) || (v == bestValue && k < bestKey) {
			best, bestKey, bestValue, found = item, k, v, true
		}
	}
	return best, bestValue, found
}

// Bucket is one group produced by GroupSum.
type Bucket struct {
	Key   string
	Sum   float64
	Count int
}

// GroupSum buckets items by key and sums value per bucket. Buckets come
// back sorted by key.
func GroupSum[T any](items []T, group func(T) string, value func(T) float64) []Bucket {
	index := make(map[string]int)
	var out []Bucket
	for _, item := range items {
		k := group(item)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Bucket{Key: k})
		}
		out[i].Sum += value(item)
		out[i].Count++
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// RatioOfSums sums numerator and denominator across every item and
// divides once. It returns 0 when the denominator sums to 0.
func RatioOfSums[T any](items []T, num, den func(T) float64) float64 {
	var n, d float64
	for _, item := range items {
		n += num(item)
		d += den(item)
	}
	if d == 0 {
		return 0
	}
	return n / d
}

func DistinctCount[T any, K comparable](items []T, key func(T) K) int {
	seen := make(map[K]struct{}, len(items))
	for _, item := range items {
		seen[key(item)] = struct{}{}
	}
	return len(seen)
}

// Frequency is one entry of TopNByFrequency.
type Frequency struct {
	Key   string
	Count int
}

// TopNByFrequency counts items by key and returns the n most frequent,
// ties broken by key. Empty keys are ignored.
func TopNByFrequency[T any](items []T, key func(T) string, n int) []Frequency {
	counts := make(map[string]int)
	for _, item := range items {
		if k := key(item); k != "" {
			counts[k]++
		}
	}
	out := make([]Frequency, 0, len(counts))
	for k, c := range counts {
		out = append(out, Frequency{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func round0(v float64) float64 { return math.Round(v) }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func perMinute(value float64, durationSeconds int) float64 {
	return value / math.Max(float64(durationSeconds)/60, 1)
}
