package review

import "math"

// Aggregate is a mentor's rating summary.
type Aggregate struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

// Incremental folds one new rating into cur without rounding. Every
// submitted rating counts, moderated or not.
func Incremental(cur Aggregate, rating int) Aggregate {
	n := cur.TotalRatings
	return Aggregate{
		AverageRating: (cur.AverageRating*float64(n) + float64(rating)) / float64(n+1),
		TotalRatings:  n + 1,
	}
}

// Recompute derives the aggregate from approved ratings only, rounded to one
// decimal. No ratings resets to zero.
//
// The two paths disagree once unmoderated feedback exists: Incremental
// counts it, Recompute does not. Whichever ran last wins.
func Recompute(approved []int) Aggregate {
	if len(approved) == 0 {
		return Aggregate{}
	}
	sum := 0
	for _, r := range approved {
		sum += r
	}
	mean := float64(sum) / float64(len(approved))
	return Aggregate{
		AverageRating: math.Round(mean*10) / 10,
		TotalRatings:  len(approved),
	}
}
