package adapters

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/company-researcher/internal/model"
)

// ageBracket pairs one of the six fixed reporting brackets with its setter.
type ageBracket struct {
	minAge int
	maxAge int
	assign func(*model.AgeDistributionData, float64)
}

// The six fixed age brackets. Groups are matched by exact minAge/maxAge
// equality; a group matching none of them stays in Groups only.
var ageBrackets = []ageBracket{
	{18, 24, func(d *model.AgeDistributionData, v float64) { d.Age18To24 = v }},
	{25, 34, func(d *model.AgeDistributionData, v float64) { d.Age25To34 = v }},
	{35, 44, func(d *model.AgeDistributionData, v float64) { d.Age35To44 = v }},
	{45, 54, func(d *model.AgeDistributionData, v float64) { d.Age45To54 = v }},
	{55, 64, func(d *model.AgeDistributionData, v float64) { d.Age55To64 = v }},
	{65, 0, func(d *model.AgeDistributionData, v float64) { d.Age65Plus = v }},
}

// Similarweb fetches traffic and company intelligence for a website domain.
// All numeric provider fields are coerced defensively; durations come back as
// "HH:MM:SS" regardless of the provider's unit.
func (f *Fetcher) Similarweb(ctx context.Context, domain string) (model.SimilarwebData, error) {
	var data model.SimilarwebData
	data.Normalize()

	input := map[string]any{
		"websites": []string{domain},
	}

	rows, err := f.call(ctx, "similarweb", f.cfg.SimilarwebActor, input)
	if err != nil {
		return data, eris.Wrap(err, "adapters: similarweb")
	}
	if len(rows) == 0 {
		return data, eris.Errorf("adapters: similarweb returned no rows for %s", domain)
	}

	row := rows[0]
	data = model.SimilarwebData{
		Name:                getString(row, "name"),
		Description:         getString(row, "description"),
		Address:             getString(row, "address"),
		CategoryID:          getString(row, "categoryId"),
		GlobalRank:          getInt(row, "globalRank"),
		CountryRank:         getInt(row, "countryRank"),
		CategoryRank:        getInt(row, "categoryRank"),
		CompanyYearFounded:  getInt(row, "companyYearFounded"),
		CompanyEmployeesMin: getInt(row, "companyEmployeesMin"),
		CompanyEmployeesMax: getInt(row, "companyEmployeesMax"),
		TotalVisits:         getFloat(row, "totalVisits"),
		BounceRate:          getFloat(row, "bounceRate"),
		PagesPerVisit:       getFloat(row, "pagesPerVisit"),
		AvgVisitDuration:    toDuration(row["avgVisitDuration"]),
		TrafficSources:      mapTrafficSources(getMap(row, "trafficSources")),
		AgeDistribution:     mapAgeDistribution(getMapSlice(row, "ageDistribution")),
		TopKeywords:         mapKeywords(getMapSlice(row, "topKeywords")),
		AdsSources:          mapAdsSources(getMapSlice(row, "adsSources")),
		TopReferrals:        mapReferrals(getMapSlice(row, "topReferrals")),
		SocialNetworks:      mapSocialNetworks(getMapSlice(row, "socialNetworkDistribution")),
		TopCountries:        mapCountries(getMapSlice(row, "topCountries")),
		Competitors:         mapCompetitors(getMapSlice(row, "topSimilarityCompetitors")),
		InterestedWebsites:  mapInterestedWebsites(getMapSlice(row, "alsoVisitedWebsites")),
	}
	data.Normalize()
	return data, nil
}

func mapTrafficSources(m map[string]any) model.TrafficSourcesData {
	return model.TrafficSourcesData{
		Direct:        getFloat(m, "directVisitsShare", "direct"),
		Search:        getFloat(m, "organicSearchVisitsShare", "search"),
		Social:        getFloat(m, "socialNetworksVisitsShare", "social"),
		Referrals:     getFloat(m, "referralVisitsShare", "referrals"),
		Mail:          getFloat(m, "mailVisitsShare", "mail"),
		PaidReferrals: getFloat(m, "paidSearchVisitsShare", "paidReferrals"),
	}
}

func mapAgeDistribution(rows []map[string]any) model.AgeDistributionData {
	dist := model.AgeDistributionData{Groups: []model.AgeGroup{}}
	for _, row := range rows {
		group := model.AgeGroup{
			MinAge: getInt(row, "minAge"),
			MaxAge: getInt(row, "maxAge"),
			Value:  getFloat(row, "value"),
		}
		dist.Groups = append(dist.Groups, group)

		for _, bracket := range ageBrackets {
			if group.MinAge == bracket.minAge && group.MaxAge == bracket.maxAge {
				bracket.assign(&dist, group.Value)
				break
			}
		}
	}
	return dist
}

func mapKeywords(rows []map[string]any) []model.TopKeyword {
	out := make([]model.TopKeyword, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.TopKeyword{
			Name:           getString(row, "name"),
			Volume:         getFloat(row, "volume"),
			CPC:            getFloat(row, "cpc"),
			EstimatedValue: getFloat(row, "estimatedValue"),
		})
	}
	return out
}

func mapAdsSources(rows []map[string]any) []model.AdsSource {
	out := make([]model.AdsSource, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.AdsSource{
			Domain: getString(row, "domain"),
			Share:  getFloat(row, "visitsShare", "share"),
		})
	}
	return out
}

func mapReferrals(rows []map[string]any) []model.TopReferral {
	out := make([]model.TopReferral, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.TopReferral{
			Domain: getString(row, "domain"),
			Share:  getFloat(row, "visitsShare", "share"),
		})
	}
	return out
}

func mapSocialNetworks(rows []map[string]any) []model.SocialNetwork {
	out := make([]model.SocialNetwork, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.SocialNetwork{
			Name:  getString(row, "name"),
			Share: getFloat(row, "visitsShare", "share"),
		})
	}
	return out
}

func mapCountries(rows []map[string]any) []model.TopCountry {
	out := make([]model.TopCountry, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.TopCountry{
			Code:  getString(row, "countryAlpha2Code", "code"),
			Name:  getString(row, "countryName", "name"),
			Share: getFloat(row, "visitsShare", "share"),
		})
	}
	return out
}

func mapCompetitors(rows []map[string]any) []model.Competitor {
	out := make([]model.Competitor, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.Competitor{
			Domain:      getString(row, "domain"),
			Affinity:    getFloat(row, "affinity"),
			TotalVisits: getFloat(row, "visitsTotalCount", "totalVisits"),
		})
	}
	return out
}

func mapInterestedWebsites(rows []map[string]any) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if domain := getString(row, "domain"); domain != "" {
			out = append(out, domain)
		}
	}
	return out
}
