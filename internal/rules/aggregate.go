package rules

import (
    "math"

    "github.com/kerimd/service-booking-api/internal/model"
)

// RatingStats summarizes all reviews of one service.
type RatingStats struct {
    Count        int         `json:"count"`
    Average      float64     `json:"average"`
    Distribution map[int]int `json:"distribution"`
}

// AggregateReviews computes count, mean rating and the per-value
// distribution for a service's reviews. The mean is rounded to one
// decimal, half away from zero. Empty input yields count 0, mean 0
// and all buckets 0; that is a valid result, not an error. Stats are
// recomputed on demand; nothing is cached.
func AggregateReviews(reviews []model.Review) RatingStats {
    stats := RatingStats{Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
    if len(reviews) == 0 {
        return stats
    }
    sum := 0
    for _, r := range reviews {
        stats.Count++
        sum += r.Rating
        if r.Rating >= 1 && r.Rating <= 5 {
            stats.Distribution[r.Rating]++
        }
    }
    mean := float64(sum) / float64(stats.Count)
    stats.Average = math.Round(mean*10) / 10
    return stats
}
