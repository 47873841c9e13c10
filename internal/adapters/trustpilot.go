package adapters

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/company-researcher/internal/model"
)

// trustpilotMaxReviews bounds how many reviews one lookup requests.
const trustpilotMaxReviews = 50

// Trustpilot fetches customer reviews for a website domain.
func (f *Fetcher) Trustpilot(ctx context.Context, domain string) ([]model.TrustpilotReview, error) {
	input := map[string]any{
		"companyDomain": domain,
		"count":         trustpilotMaxReviews,
	}

	rows, err := f.call(ctx, "trustpilot", f.cfg.TrustpilotActor, input)
	if err != nil {
		return nil, eris.Wrap(err, "adapters: trustpilot")
	}

	reviews := make([]model.TrustpilotReview, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, model.TrustpilotReview{
			Title:    getString(row, "reviewTitle", "title"),
			Text:     getString(row, "reviewBody", "text"),
			Rating:   getFloat(row, "ratingValue", "rating", "stars"),
			Author:   getString(row, "reviewerName", "author"),
			Date:     getString(row, "datePublished", "date"),
			URL:      getString(row, "reviewUrl", "url"),
			Verified: getBool(row, "verified", "isVerified"),
		})
	}
	return reviews, nil
}
