package apiclient

import (
	"net/url"
	"strconv"

	"github.com/smr-site/reviews-api/internal/api"
)

// ListReviews returns reviews for moderation, newest first, including
// reviewer emails. A non-positive limit asks for the default of 500.
func (c *APIClient) ListReviews(limit int) (api.AdminReviewsResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}

	var reviews api.AdminReviewsResponse
	err := c.get("/reviews", query, &reviews)
	return reviews, err
}

// DeleteReview removes a review by id.
func (c *APIClient) DeleteReview(id int64) error {
	fields := map[string]string{"id": strconv.FormatInt(id, 10)}
	return c.postForm("/reviews/delete", fields, nil)
}
