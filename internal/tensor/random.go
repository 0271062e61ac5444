package tensor

import (
	"fmt"
	"math/rand"
)

// Random fills. Every primitive takes the generator explicitly: the
// engine owns no process-wide randomness, so a seeded rand.Rand makes
// results reproducible and safe to use from tests.

// Uniform fills the view with samples from [0, 1).
func (t *Tensor[T]) Uniform(rng *rand.Rand) {
	Apply(t, func(T) T { return t.num.Rand(rng) })
}

// Normal fills the view with standard normal samples.
func (t *Tensor[T]) Normal(rng *rand.Rand) {
	Apply(t, func(T) T { return t.num.Randn(rng) })
}

// Bernoulli fills the view with 1 with probability p and 0 otherwise.
func (t *Tensor[T]) Bernoulli(rng *rand.Rand, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("tensor: bernoulli: probability %v outside [0, 1]", p)
	}
	one, zero := t.num.One(), t.num.Zero()
	Apply(t, func(T) T {
		if rng.Float64() < p {
			return one
		}
		return zero
	})
	return nil
}
