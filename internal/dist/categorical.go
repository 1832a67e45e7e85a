package dist

import (
	"fmt"
	"sort"
)

// Categorical is a normalized weighted distribution over string labels.
// Construction sorts labels so that sampling order never depends on map
// iteration; zero-weight labels stay present but are never drawn.
type Categorical struct {
	labels  []string
	weights []float64
	cum     []float64
}

// NewCategorical builds a categorical distribution from label weights.
// Weights need not sum to one; they are normalized here. Negative weights
// and a non-positive total are construction errors.
func NewCategorical(weights map[string]float64) (Categorical, error) {
	if len(weights) == 0 {
		return Categorical{}, fmt.Errorf("dist: categorical needs at least one label")
	}
	labels := make([]string, 0, len(weights))
	for label := range weights {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	total := 0.0
	for _, label := range labels {
		w := weights[label]
		if w < 0 {
			return Categorical{}, fmt.Errorf("dist: negative weight %v for label %q", w, label)
		}
		total += w
	}
	if total <= 0 {
		return Categorical{}, fmt.Errorf("dist: categorical weights sum to %v, need > 0", total)
	}

	norm := make([]float64, len(labels))
	cum := make([]float64, len(labels))
	acc := 0.0
	for i, label := range labels {
		norm[i] = weights[label] / total
		acc += norm[i]
		cum[i] = acc
	}
	// Pin the final boundary so float drift can never leave Sample without a
	// matching bucket.
	cum[len(cum)-1] = 1
	return Categorical{labels: labels, weights: norm, cum: cum}, nil
}

// MustCategorical is NewCategorical for compiled-in tables; invalid weights
// are a programming error and panic at initialization.
func MustCategorical(weights map[string]float64) Categorical {
	c, err := NewCategorical(weights)
	if err != nil {
		panic(err)
	}
	return c
}

// Sample draws one label by inverse transform over the cumulative weights.
func (c Categorical) Sample(s Stream) string {
	r := s.Float64()
	i := sort.Search(len(c.cum), func(i int) bool { return c.cum[i] > r })
	if i == len(c.cum) {
		i = len(c.cum) - 1
	}
	return c.labels[i]
}

// Len returns the number of labels.
func (c Categorical) Len() int {
	return len(c.labels)
}

// Labels returns the labels in their fixed sampling order.
func (c Categorical) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Weight returns the normalized weight of label, or zero if absent.
func (c Categorical) Weight(label string) float64 {
	for i, l := range c.labels {
		if l == label {
			return c.weights[i]
		}
	}
	return 0
}

// Reweight returns a new distribution with each weight replaced by
// f(label, weight), renormalized. The receiver is unchanged.
func (c Categorical) Reweight(f func(label string, weight float64) float64) (Categorical, error) {
	next := make(map[string]float64, len(c.labels))
	for i, label := range c.labels {
		next[label] = f(label, c.weights[i])
	}
	return NewCategorical(next)
}
