// Package enrich promotes a BasicProfile into a full CompanyProfile by
// fanning out to the external source adapters and reconciling their results.
package enrich

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/company-researcher/internal/model"
)

// SourceFetcher is the adapter surface the enricher fans out to.
type SourceFetcher interface {
	LinkedIn(ctx context.Context, profileURL string) (model.LinkedInData, error)
	Trustpilot(ctx context.Context, domain string) ([]model.TrustpilotReview, error)
	Similarweb(ctx context.Context, domain string) (model.SimilarwebData, error)
	GoogleMaps(ctx context.Context, query string) ([]model.GoogleMapsPlace, error)
}

// Enricher reconciles adapter results into one canonical profile.
type Enricher struct {
	sources SourceFetcher
}

// New creates an Enricher over the given adapters.
func New(sources SourceFetcher) *Enricher {
	return &Enricher{sources: sources}
}

// Enrich copies the basic profile into a CompanyProfile, runs every
// applicable source lookup concurrently, resolves the address, and runs the
// dependent Google Maps lookup. Adapter failures are absorbed here: the
// corresponding section keeps its zero value and the rest of the profile is
// unaffected. Enrich itself never fails.
//
// Each fan-out task writes only its own profile field, so the barrier is the
// only synchronization needed.
func (e *Enricher) Enrich(ctx context.Context, basic *model.BasicProfile) *model.CompanyProfile {
	log := zap.L().With(zap.String("company", basic.CompanyName))
	profile := model.NewCompanyProfile(basic)

	domain := stripScheme(basic.WebsiteURL)

	g, gCtx := errgroup.WithContext(ctx)

	if basic.LinkedInURL != "" {
		g.Go(func() error {
			data, err := e.sources.LinkedIn(gCtx, basic.LinkedInURL)
			if err != nil {
				log.Warn("enrich: linkedin lookup failed", zap.Error(err))
				return nil
			}
			profile.LinkedInData = data
			return nil
		})
	}

	if domain != "" {
		g.Go(func() error {
			reviews, err := e.sources.Trustpilot(gCtx, domain)
			if err != nil {
				log.Warn("enrich: trustpilot lookup failed", zap.Error(err))
				return nil
			}
			profile.TrustpilotData = reviews
			return nil
		})

		g.Go(func() error {
			data, err := e.sources.Similarweb(gCtx, domain)
			if err != nil {
				log.Warn("enrich: similarweb lookup failed", zap.Error(err))
				return nil
			}
			profile.SimilarwebData = data
			return nil
		})
	}

	// Join-all barrier: no lookup errors escape the goroutines above.
	_ = g.Wait()

	// The Maps lookup depends on the resolved address, so it cannot join the
	// concurrent batch.
	if address := ResolveAddress(profile); address != "" {
		query := basic.CompanyName + " " + address
		places, err := e.sources.GoogleMaps(ctx, query)
		if err != nil {
			log.Warn("enrich: google maps lookup failed",
				zap.String("query", query),
				zap.Error(err),
			)
		} else {
			profile.GoogleMapsData = places
		}
	}

	log.Info("enrich: profile reconciled",
		zap.Bool("linkedin", basic.LinkedInURL != ""),
		zap.Bool("website_sources", domain != ""),
		zap.Int("trustpilot_reviews", len(profile.TrustpilotData)),
		zap.Int("google_maps_places", len(profile.GoogleMapsData)),
	)

	return profile
}

// ResolveAddress derives the profile's canonical address: the LinkedIn
// address wins outright, SimilarWeb is the fallback. First match wins; the
// values are never merged.
func ResolveAddress(profile *model.CompanyProfile) string {
	if addr := strings.TrimSpace(profile.LinkedInData.Address); addr != "" {
		return addr
	}
	return strings.TrimSpace(profile.SimilarwebData.Address)
}

// stripScheme reduces a website URL to a best-effort domain: drop the
// http(s) scheme and a leading "www.". No further validation; the adapters
// take whatever is left.
func stripScheme(websiteURL string) string {
	s := strings.TrimSpace(websiteURL)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	return strings.TrimSuffix(s, "/")
}
