package adapters

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/company-researcher/internal/model"
)

// googleMapsMaxPlaces bounds how many places one lookup requests.
const googleMapsMaxPlaces = 5

// GoogleMaps fetches place listings matching a free-form query, typically
// "<company name> <address>".
func (f *Fetcher) GoogleMaps(ctx context.Context, query string) ([]model.GoogleMapsPlace, error) {
	input := map[string]any{
		"searchStringsArray":        []string{query},
		"maxCrawledPlacesPerSearch": googleMapsMaxPlaces,
	}

	rows, err := f.call(ctx, "google_maps", f.cfg.GoogleMapsActor, input)
	if err != nil {
		return nil, eris.Wrap(err, "adapters: google maps")
	}

	places := make([]model.GoogleMapsPlace, 0, len(rows))
	for _, row := range rows {
		location := getMap(row, "location")
		places = append(places, model.GoogleMapsPlace{
			Name:        getString(row, "title", "name"),
			Address:     getString(row, "address"),
			Phone:       getString(row, "phone"),
			Website:     getString(row, "website"),
			Category:    getString(row, "categoryName", "category"),
			TotalScore:  getFloat(row, "totalScore"),
			ReviewCount: getInt(row, "reviewsCount"),
			Latitude:    getFloat(location, "lat"),
			Longitude:   getFloat(location, "lng"),
			Reviews:     mapPlaceReviews(getMapSlice(row, "reviews")),
		})
	}
	return places, nil
}

func mapPlaceReviews(rows []map[string]any) []model.GoogleMapsReview {
	out := make([]model.GoogleMapsReview, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.GoogleMapsReview{
			Author:      getString(row, "name", "author"),
			Text:        getString(row, "text"),
			Stars:       getFloat(row, "stars", "rating"),
			PublishedAt: getString(row, "publishedAtDate", "publishedAt"),
		})
	}
	return out
}
