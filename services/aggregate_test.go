package services

import (
	"testing"

	"store-rating/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageRating(t *testing.T) {
	t.Parallel()

	assert.Nil(t, AverageRating(nil))
	assert.Nil(t, AverageRating([]int{}))

	avg := AverageRating([]int{4, 5})
	require.NotNil(t, avg)
	assert.Equal(t, 4.5, *avg)

	avg = AverageRating([]int{1, 2, 2})
	require.NotNil(t, avg)
	assert.InDelta(t, 5.0/3.0, *avg, 1e-9)
}

func TestMyRating(t *testing.T) {
	t.Parallel()

	ratings := []models.Rating{
		{UserID: 1, Value: 2},
		{UserID: 7, Value: 5},
	}

	mine := MyRating(ratings, 7)
	require.NotNil(t, mine)
	assert.Equal(t, 5, *mine)
	assert.Nil(t, MyRating(ratings, 3))
	assert.Nil(t, MyRating(nil, 1))
}
