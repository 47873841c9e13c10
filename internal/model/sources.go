package model

// LinkedInData mirrors the LinkedIn company-profile scraper's output shape.
// Every field defaults to its zero value when the provider omits it.
type LinkedInData struct {
	CompanyName   string   `json:"company_name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	Industry      string   `json:"industry"`
	CompanySize   string   `json:"company_size"`
	Headquarters  string   `json:"headquarters"`
	Founded       int      `json:"founded"`
	Specialties   []string `json:"specialties"`
	Followers     int      `json:"followers"`
	EmployeeCount int      `json:"employee_count"`
	Address       string   `json:"address"`
}

// Normalize makes all list fields non-nil.
func (d *LinkedInData) Normalize() {
	if d.Specialties == nil {
		d.Specialties = []string{}
	}
}

// TrustpilotReview is a single customer review scraped from Trustpilot.
type TrustpilotReview struct {
	Title    string  `json:"title"`
	Text     string  `json:"text"`
	Rating   float64 `json:"rating"`
	Author   string  `json:"author"`
	Date     string  `json:"date"`
	URL      string  `json:"url"`
	Verified bool    `json:"verified"`
}

// TrafficSourcesData breaks down a site's traffic by channel, as shares in
// the 0.0-1.0 range.
type TrafficSourcesData struct {
	Direct        float64 `json:"direct"`
	Search        float64 `json:"search"`
	Social        float64 `json:"social"`
	Referrals     float64 `json:"referrals"`
	Mail          float64 `json:"mail"`
	PaidReferrals float64 `json:"paid_referrals"`
}

// AgeGroup is one raw age-distribution bucket as reported by the provider.
type AgeGroup struct {
	MinAge int     `json:"min_age"`
	MaxAge int     `json:"max_age"`
	Value  float64 `json:"value"`
}

// AgeDistributionData holds the six fixed age brackets plus the raw groups.
// Groups that match none of the brackets still appear in Groups.
type AgeDistributionData struct {
	Age18To24 float64    `json:"age_18_24"`
	Age25To34 float64    `json:"age_25_34"`
	Age35To44 float64    `json:"age_35_44"`
	Age45To54 float64    `json:"age_45_54"`
	Age55To64 float64    `json:"age_55_64"`
	Age65Plus float64    `json:"age_65_plus"`
	Groups    []AgeGroup `json:"groups"`
}

// TopKeyword is one organic search keyword driving traffic to the site.
type TopKeyword struct {
	Name           string  `json:"name"`
	Volume         float64 `json:"volume"`
	CPC            float64 `json:"cpc"`
	EstimatedValue float64 `json:"estimated_value"`
}

// AdsSource is one domain serving ads that route traffic to the site.
type AdsSource struct {
	Domain string  `json:"domain"`
	Share  float64 `json:"share"`
}

// TopReferral is one referring domain.
type TopReferral struct {
	Domain string  `json:"domain"`
	Share  float64 `json:"share"`
}

// SocialNetwork is one social network's share of social traffic.
type SocialNetwork struct {
	Name  string  `json:"name"`
	Share float64 `json:"share"`
}

// TopCountry is one country's share of total traffic.
type TopCountry struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Share float64 `json:"share"`
}

// Competitor is one similar site reported by SimilarWeb.
type Competitor struct {
	Domain      string  `json:"domain"`
	Affinity    float64 `json:"affinity"`
	TotalVisits float64 `json:"total_visits"`
}

// SimilarwebData mirrors the SimilarWeb scraper's output shape after unit
// coercion: durations as "HH:MM:SS" strings, shares as floats.
type SimilarwebData struct {
	Name                string              `json:"name"`
	Description         string              `json:"description"`
	Address             string              `json:"address"`
	CategoryID          string              `json:"category_id"`
	GlobalRank          int                 `json:"global_rank"`
	CountryRank         int                 `json:"country_rank"`
	CategoryRank        int                 `json:"category_rank"`
	CompanyYearFounded  int                 `json:"company_year_founded"`
	CompanyEmployeesMin int                 `json:"company_employees_min"`
	CompanyEmployeesMax int                 `json:"company_employees_max"`
	TotalVisits         float64             `json:"total_visits"`
	BounceRate          float64             `json:"bounce_rate"`
	PagesPerVisit       float64             `json:"pages_per_visit"`
	AvgVisitDuration    string              `json:"avg_visit_duration"`
	TrafficSources      TrafficSourcesData  `json:"traffic_sources"`
	AgeDistribution     AgeDistributionData `json:"age_distribution"`
	TopKeywords         []TopKeyword        `json:"top_keywords"`
	AdsSources          []AdsSource         `json:"ads_sources"`
	TopReferrals        []TopReferral       `json:"top_referrals"`
	SocialNetworks      []SocialNetwork     `json:"social_network_distribution"`
	TopCountries        []TopCountry        `json:"top_countries"`
	Competitors         []Competitor        `json:"top_similarity_competitors"`
	InterestedWebsites  []string            `json:"interested_websites"`
}

// Normalize makes all list fields non-nil.
func (d *SimilarwebData) Normalize() {
	if d.AgeDistribution.Groups == nil {
		d.AgeDistribution.Groups = []AgeGroup{}
	}
	if d.TopKeywords == nil {
		d.TopKeywords = []TopKeyword{}
	}
	if d.AdsSources == nil {
		d.AdsSources = []AdsSource{}
	}
	if d.TopReferrals == nil {
		d.TopReferrals = []TopReferral{}
	}
	if d.SocialNetworks == nil {
		d.SocialNetworks = []SocialNetwork{}
	}
	if d.TopCountries == nil {
		d.TopCountries = []TopCountry{}
	}
	if d.Competitors == nil {
		d.Competitors = []Competitor{}
	}
	if d.InterestedWebsites == nil {
		d.InterestedWebsites = []string{}
	}
}

// GoogleMapsReview is a single place review.
type GoogleMapsReview struct {
	Author      string  `json:"author"`
	Text        string  `json:"text"`
	Stars       float64 `json:"stars"`
	PublishedAt string  `json:"published_at"`
}

// GoogleMapsPlace is one place result from the Google Maps scraper.
type GoogleMapsPlace struct {
	Name        string             `json:"name"`
	Address     string             `json:"address"`
	Phone       string             `json:"phone"`
	Website     string             `json:"website"`
	Category    string             `json:"category"`
	TotalScore  float64            `json:"total_score"`
	ReviewCount int                `json:"review_count"`
	Latitude    float64            `json:"latitude"`
	Longitude   float64            `json:"longitude"`
	Reviews     []GoogleMapsReview `json:"reviews"`
}
