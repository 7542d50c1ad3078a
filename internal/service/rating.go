package service

import (
	"math"

	"moviematrix/internal/models"
)

// RoundRating rounds to one decimal place.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

// AggregateRatings computes the displayed rating and count from the
// moderated reviews of a movie. No moderated reviews yields 0/0.
func AggregateRatings(movieID string, reviews []models.Review) models.RatingAggregate {
	agg := models.RatingAggregate{MovieID: movieID}

	var sum float64
	for _, rv := range reviews {
		if !rv.Moderated {
			continue
		}
		sum += rv.Rating
		agg.ReviewCount++
	}
	if agg.ReviewCount > 0 {
		agg.Rating = RoundRating(sum / float64(agg.ReviewCount))
	}
	return agg
}
