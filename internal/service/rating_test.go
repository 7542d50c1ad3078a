package service_test

import (
	"testing"

	"moviematrix/internal/models"
	"moviematrix/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 7.7, service.RoundRating(23.0/3))
	assert.Equal(t, 7.0, service.RoundRating(7))
	assert.Equal(t, 6.5, service.RoundRating(6.45))
	assert.Equal(t, 0.0, service.RoundRating(0))
}

func TestAggregateRatings(t *testing.T) {
	tests := []struct {
		name      string
		reviews   []models.Review
		wantMean  float64
		wantCount int
	}{
		{name: "no reviews", reviews: nil, wantMean: 0, wantCount: 0},
		{
			name:      "two reviews",
			reviews:   []models.Review{{Rating: 8, Moderated: true}, {Rating: 6, Moderated: true}},
			wantMean:  7,
			wantCount: 2,
		},
		{
			name:      "rounds to one decimal",
			reviews:   []models.Review{{Rating: 7, Moderated: true}, {Rating: 8, Moderated: true}, {Rating: 8, Moderated: true}},
			wantMean:  7.7,
			wantCount: 3,
		},
		{
			name:      "unmoderated reviews are ignored",
			reviews:   []models.Review{{Rating: 2, Moderated: false}, {Rating: 9, Moderated: true}},
			wantMean:  9,
			wantCount: 1,
		},
		{
			name:      "only unmoderated",
			reviews:   []models.Review{{Rating: 5}},
			wantMean:  0,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := service.AggregateRatings("m1", tt.reviews)
			assert.Equal(t, "m1", agg.MovieID)
			assert.Equal(t, tt.wantMean, agg.Rating)
			assert.Equal(t, tt.wantCount, agg.ReviewCount)
		})
	}
}
