package rules

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/kerimd/service-booking-api/internal/model"
)

func ratings(vals ...int) []model.Review {
    out := make([]model.Review, 0, len(vals))
    for _, v := range vals {
        out = append(out, model.Review{Rating: v})
    }
    return out
}

func TestAggregateReviews_Empty(t *testing.T) {
    stats := AggregateReviews(nil)
    assert.Equal(t, 0, stats.Count)
    assert.Equal(t, 0.0, stats.Average)
    assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.Distribution)
}

func TestAggregateReviews_RoundsHalfUp(t *testing.T) {
    // 14/3 = 4.666... -> 4.7
    stats := AggregateReviews(ratings(5, 5, 4))
    assert.Equal(t, 3, stats.Count)
    assert.Equal(t, 4.7, stats.Average)
    assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 1, 5: 2}, stats.Distribution)

    // 7/2 = 3.5 stays 3.5; 9/4 = 2.25 -> 2.3 (half up at the second decimal)
    assert.Equal(t, 3.5, AggregateReviews(ratings(3, 4)).Average)
    assert.Equal(t, 2.3, AggregateReviews(ratings(1, 2, 3, 3)).Average)
}

func TestAggregateReviews_SingleValue(t *testing.T) {
    stats := AggregateReviews(ratings(1))
    assert.Equal(t, 1, stats.Count)
    assert.Equal(t, 1.0, stats.Average)
    assert.Equal(t, 1, stats.Distribution[1])
}
