package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/company-researcher/internal/model"
)

type mockSources struct {
	mock.Mock
}

var _ SourceFetcher = (*mockSources)(nil)

func (m *mockSources) LinkedIn(ctx context.Context, profileURL string) (model.LinkedInData, error) {
	args := m.Called(ctx, profileURL)
	return args.Get(0).(model.LinkedInData), args.Error(1)
}

func (m *mockSources) Trustpilot(ctx context.Context, domain string) ([]model.TrustpilotReview, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TrustpilotReview), args.Error(1)
}

func (m *mockSources) Similarweb(ctx context.Context, domain string) (model.SimilarwebData, error) {
	args := m.Called(ctx, domain)
	return args.Get(0).(model.SimilarwebData), args.Error(1)
}

func (m *mockSources) GoogleMaps(ctx context.Context, query string) ([]model.GoogleMapsPlace, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GoogleMapsPlace), args.Error(1)
}

func fullBasic() *model.BasicProfile {
	basic := model.NewBasicProfile("Acme Corp")
	basic.WebsiteURL = "https://www.acme.com/"
	basic.LinkedInURL = "https://linkedin.com/company/acme"
	return basic
}

func TestEnrich_AllSources(t *testing.T) {
	sources := new(mockSources)
	sources.On("LinkedIn", mock.Anything, "https://linkedin.com/company/acme").
		Return(model.LinkedInData{CompanyName: "Acme Corp", Address: "123 Main St"}, nil)
	sources.On("Trustpilot", mock.Anything, "acme.com").
		Return([]model.TrustpilotReview{{Title: "Great", Rating: 5}}, nil)
	sources.On("Similarweb", mock.Anything, "acme.com").
		Return(model.SimilarwebData{Name: "Acme", Address: "456 Elm St"}, nil)
	sources.On("GoogleMaps", mock.Anything, "Acme Corp 123 Main St").
		Return([]model.GoogleMapsPlace{{Name: "Acme HQ"}}, nil)

	profile := New(sources).Enrich(context.Background(), fullBasic())

	assert.Equal(t, "Acme Corp", profile.LinkedInData.CompanyName)
	require.Len(t, profile.TrustpilotData, 1)
	assert.Equal(t, "Acme", profile.SimilarwebData.Name)
	require.Len(t, profile.GoogleMapsData, 1)

	sources.AssertExpectations(t)
}

func TestEnrich_NoLinkedInURL(t *testing.T) {
	sources := new(mockSources)
	sources.On("Trustpilot", mock.Anything, "acme.com").Return([]model.TrustpilotReview{}, nil)
	sources.On("Similarweb", mock.Anything, "acme.com").Return(model.SimilarwebData{}, nil)

	basic := fullBasic()
	basic.LinkedInURL = ""

	profile := New(sources).Enrich(context.Background(), basic)

	assert.Empty(t, profile.LinkedInData.CompanyName)
	sources.AssertNotCalled(t, "LinkedIn", mock.Anything, mock.Anything)
	// No address resolved anywhere: no Maps lookup either.
	sources.AssertNotCalled(t, "GoogleMaps", mock.Anything, mock.Anything)
}

func TestEnrich_NoWebsiteURL(t *testing.T) {
	sources := new(mockSources)
	sources.On("LinkedIn", mock.Anything, mock.Anything).Return(model.LinkedInData{}, nil)

	basic := fullBasic()
	basic.WebsiteURL = ""

	New(sources).Enrich(context.Background(), basic)

	sources.AssertNotCalled(t, "Trustpilot", mock.Anything, mock.Anything)
	sources.AssertNotCalled(t, "Similarweb", mock.Anything, mock.Anything)
}

func TestEnrich_FailureIsolation(t *testing.T) {
	sources := new(mockSources)
	sources.On("LinkedIn", mock.Anything, mock.Anything).
		Return(model.LinkedInData{}, errors.New("actor failed"))
	sources.On("Trustpilot", mock.Anything, "acme.com").
		Return(nil, errors.New("actor failed"))
	sources.On("Similarweb", mock.Anything, "acme.com").
		Return(model.SimilarwebData{Name: "Acme"}, nil)

	profile := New(sources).Enrich(context.Background(), fullBasic())

	// Failed sources keep their zero values; the good one lands.
	assert.Empty(t, profile.LinkedInData.CompanyName)
	assert.Empty(t, profile.TrustpilotData)
	assert.Equal(t, "Acme", profile.SimilarwebData.Name)
}

func TestEnrich_AddressFallsBackToSimilarweb(t *testing.T) {
	sources := new(mockSources)
	sources.On("LinkedIn", mock.Anything, mock.Anything).
		Return(model.LinkedInData{CompanyName: "Acme"}, nil)
	sources.On("Trustpilot", mock.Anything, "acme.com").Return([]model.TrustpilotReview{}, nil)
	sources.On("Similarweb", mock.Anything, "acme.com").
		Return(model.SimilarwebData{Address: "456 Elm St"}, nil)
	sources.On("GoogleMaps", mock.Anything, "Acme Corp 456 Elm St").
		Return([]model.GoogleMapsPlace{}, nil)

	New(sources).Enrich(context.Background(), fullBasic())

	sources.AssertCalled(t, "GoogleMaps", mock.Anything, "Acme Corp 456 Elm St")
}

func TestEnrich_MapsFailureIgnored(t *testing.T) {
	sources := new(mockSources)
	sources.On("LinkedIn", mock.Anything, mock.Anything).
		Return(model.LinkedInData{Address: "123 Main St"}, nil)
	sources.On("Trustpilot", mock.Anything, "acme.com").Return([]model.TrustpilotReview{}, nil)
	sources.On("Similarweb", mock.Anything, "acme.com").Return(model.SimilarwebData{}, nil)
	sources.On("GoogleMaps", mock.Anything, mock.Anything).
		Return(nil, errors.New("actor failed"))

	profile := New(sources).Enrich(context.Background(), fullBasic())
	assert.Empty(t, profile.GoogleMapsData)
}

func TestResolveAddress(t *testing.T) {
	p := &model.CompanyProfile{}
	p.LinkedInData.Address = "  123 Main St  "
	p.SimilarwebData.Address = "456 Elm St"
	assert.Equal(t, "123 Main St", ResolveAddress(p))

	p.LinkedInData.Address = ""
	assert.Equal(t, "456 Elm St", ResolveAddress(p))

	p.SimilarwebData.Address = ""
	assert.Empty(t, ResolveAddress(p))
}

func TestStripScheme(t *testing.T) {
	assert.Equal(t, "acme.com", stripScheme("https://www.acme.com/"))
	assert.Equal(t, "acme.com", stripScheme("http://acme.com"))
	assert.Equal(t, "acme.com/shop", stripScheme("acme.com/shop/"))
	assert.Equal(t, "", stripScheme(""))
}
