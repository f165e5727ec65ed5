package services

import "store-rating/models"

// AverageRating returns the arithmetic mean of values, or nil when empty.
func AverageRating(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	avg := float64(sum) / float64(len(values))
	return &avg
}

func ratingValues(ratings []models.Rating) []int {
	values := make([]int, len(ratings))
	for i, r := range ratings {
		values[i] = r.Value
	}
	return values
}

// MyRating returns userID's rating value among ratings, or nil.
func MyRating(ratings []models.Rating, userID uint) *int {
	for _, r := range ratings {
		if r.UserID == userID {
			v := r.Value
			return &v
		}
	}
	return nil
}
