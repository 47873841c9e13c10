package model

// Employee is a single key employee entry.
type Employee struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

// NewsItem is a single recent news entry about the company.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// BasicProfile is the first-pass structured profile produced by the research
// agent. Every list field is always non-nil; downstream code never has to
// distinguish a missing list from an empty one.
type BasicProfile struct {
	CompanyName        string     `json:"company_name"`
	WebsiteURL         string     `json:"website_url"`
	ShortDescription   string     `json:"short_description"`
	Industry           string     `json:"industry"`
	BusinessModel      string     `json:"business_model"`
	TargetMarket       string     `json:"target_market"`
	ProductsServices   []string   `json:"products_services"`
	FoundingYear       int        `json:"founding_year"`
	FundingInformation string     `json:"funding_information"`
	EstimatedRevenue   string     `json:"estimated_revenue"`
	KeyEmployees       []Employee `json:"key_employees"`
	EmployeeCount      string     `json:"employee_count"`
	Competitors        []string   `json:"competitors"`
	MarketPosition     string     `json:"market_position"`
	LinkedInURL        string     `json:"linkedin_url"`
	TwitterURL         string     `json:"twitter_url"`
	FacebookURL        string     `json:"facebook_url"`
	InstagramURL       string     `json:"instagram_url"`
	YouTubeURL         string     `json:"youtube_url"`
	LatestNews         []NewsItem `json:"latest_news"`
	ExtraData          string     `json:"extra_data"`
}

// NewBasicProfile returns a BasicProfile with all list fields initialized.
func NewBasicProfile(companyName string) *BasicProfile {
	p := &BasicProfile{CompanyName: companyName}
	p.Normalize()
	return p
}

// Normalize re-establishes the non-nil invariant on every list field. Call it
// after decoding a profile from JSON, where absent lists decode to nil.
func (p *BasicProfile) Normalize() {
	if p.ProductsServices == nil {
		p.ProductsServices = []string{}
	}
	if p.KeyEmployees == nil {
		p.KeyEmployees = []Employee{}
	}
	if p.Competitors == nil {
		p.Competitors = []string{}
	}
	if p.LatestNews == nil {
		p.LatestNews = []NewsItem{}
	}
}

// CompanyProfile is the full reconciled profile: every BasicProfile field plus
// the enrichment sections filled in by the external source adapters. Report is
// nil until the synthesizer has run.
type CompanyProfile struct {
	CompanyName        string     `json:"company_name"`
	WebsiteURL         string     `json:"website_url"`
	ShortDescription   string     `json:"short_description"`
	Industry           string     `json:"industry"`
	BusinessModel      string     `json:"business_model"`
	TargetMarket       string     `json:"target_market"`
	ProductsServices   []string   `json:"products_services"`
	FoundingYear       int        `json:"founding_year"`
	FundingInformation string     `json:"funding_information"`
	EstimatedRevenue   string     `json:"estimated_revenue"`
	KeyEmployees       []Employee `json:"key_employees"`
	EmployeeCount      string     `json:"employee_count"`
	Competitors        []string   `json:"competitors"`
	MarketPosition     string     `json:"market_position"`
	LinkedInURL        string     `json:"linkedin_url"`
	TwitterURL         string     `json:"twitter_url"`
	FacebookURL        string     `json:"facebook_url"`
	InstagramURL       string     `json:"instagram_url"`
	YouTubeURL         string     `json:"youtube_url"`
	GitHubURL          string     `json:"github_url"`
	DiscordURL         string     `json:"discord_url"`
	LatestNews         []NewsItem `json:"latest_news"`
	ExtraData          string     `json:"extra_data"`

	LinkedInData   LinkedInData       `json:"linkedin_data"`
	TrustpilotData []TrustpilotReview `json:"trustpilot_data"`
	SimilarwebData SimilarwebData     `json:"similarweb_data"`
	GoogleMapsData []GoogleMapsPlace  `json:"google_maps_data"`

	Report *string `json:"report"`
}

// NewCompanyProfile builds a CompanyProfile by copying every field from a
// completed BasicProfile. Enrichment sections start at their zero values.
func NewCompanyProfile(basic *BasicProfile) *CompanyProfile {
	p := &CompanyProfile{
		CompanyName:        basic.CompanyName,
		WebsiteURL:         basic.WebsiteURL,
		ShortDescription:   basic.ShortDescription,
		Industry:           basic.Industry,
		BusinessModel:      basic.BusinessModel,
		TargetMarket:       basic.TargetMarket,
		ProductsServices:   append([]string{}, basic.ProductsServices...),
		FoundingYear:       basic.FoundingYear,
		FundingInformation: basic.FundingInformation,
		EstimatedRevenue:   basic.EstimatedRevenue,
		KeyEmployees:       append([]Employee{}, basic.KeyEmployees...),
		EmployeeCount:      basic.EmployeeCount,
		Competitors:        append([]string{}, basic.Competitors...),
		MarketPosition:     basic.MarketPosition,
		LinkedInURL:        basic.LinkedInURL,
		TwitterURL:         basic.TwitterURL,
		FacebookURL:        basic.FacebookURL,
		InstagramURL:       basic.InstagramURL,
		YouTubeURL:         basic.YouTubeURL,
		LatestNews:         append([]NewsItem{}, basic.LatestNews...),
		ExtraData:          basic.ExtraData,
		TrustpilotData:     []TrustpilotReview{},
		GoogleMapsData:     []GoogleMapsPlace{},
	}
	p.LinkedInData.Normalize()
	p.SimilarwebData.Normalize()
	return p
}
