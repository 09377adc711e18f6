// Package quiz assembles practice sessions from the question pool and
// records their outcomes.
package quiz

import (
	"context"
	"math/rand/v2"

	"github.com/vkiss/memoriter/internal/store"
)

// weightFloor keeps fully mastered questions selectable with a small
// residual probability instead of vanishing from practice entirely.
const weightFloor = 0.05

// Selector draws questions from a topic, favouring poorly-known material.
type Selector struct {
	store *store.Store
	rng   *rand.Rand
}

// NewSelector creates a selector. rng may be nil, in which case a
// process-seeded source is used; tests inject a seeded one.
func NewSelector(st *store.Store, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{store: st, rng: rng}
}

// Select returns up to count active questions from the topic, sampled
// without replacement with probability inversely proportional to the
// question's success rate. Never-asked questions carry the neutral prior,
// so fresh material mixes in rather than dominating or being starved.
// Questions whose id is in exclude are not considered.
func (s *Selector) Select(ctx context.Context, ownerID string, topicID uint, count int, qt *store.QuestionType, exclude map[uint]bool) ([]store.Question, error) {
	if count <= 0 {
		return nil, nil
	}

	candidates, err := s.store.ActiveQuestionsByTopic(ctx, ownerID, topicID, qt)
	if err != nil {
		return nil, err
	}

	if len(exclude) > 0 {
		filtered := candidates[:0]
		for _, q := range candidates {
			if !exclude[q.ID] {
				filtered = append(filtered, q)
			}
		}
		candidates = filtered
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	stats, err := s.store.StatsForQuestions(ctx, ownerID, questionIDs(candidates))
	if err != nil {
		return nil, err
	}

	weights := make([]float64, len(candidates))
	for i, q := range candidates {
		rate := store.NeutralSuccessRate
		if stat, ok := stats[q.ID]; ok {
			rate = stat.SuccessRate()
		}
		weights[i] = weightFor(rate)
	}

	if count > len(candidates) {
		count = len(candidates)
	}

	selected := make([]store.Question, 0, count)
	for len(selected) < count {
		i := s.drawIndex(weights)
		selected = append(selected, candidates[i])

		// Remove without preserving order; weights move with candidates.
		last := len(candidates) - 1
		candidates[i], candidates[last] = candidates[last], candidates[i]
		weights[i], weights[last] = weights[last], weights[i]
		candidates = candidates[:last]
		weights = weights[:last]
	}

	return selected, nil
}

// weightFor maps mastery to selection pressure: a struggling question
// (low success rate) weighs close to 1, a mastered one sits on the floor.
func weightFor(successRate float64) float64 {
	return 1 - successRate + weightFloor
}

// drawIndex samples an index proportionally to weights.
func (s *Selector) drawIndex(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}

	r := s.rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	return len(weights) - 1
}

func questionIDs(questions []store.Question) []uint {
	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}
