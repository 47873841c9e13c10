package adapters

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/company-researcher/internal/model"
)

// LinkedIn fetches the company profile behind a LinkedIn company URL. An
// empty dataset is an error so the caller can tell a failed lookup from a
// sparse profile.
func (f *Fetcher) LinkedIn(ctx context.Context, profileURL string) (model.LinkedInData, error) {
	var data model.LinkedInData
	data.Normalize()

	input := map[string]any{
		"companies": []string{profileURL},
	}

	rows, err := f.call(ctx, "linkedin", f.cfg.LinkedInActor, input)
	if err != nil {
		return data, eris.Wrap(err, "adapters: linkedin")
	}
	if len(rows) == 0 {
		return data, eris.Errorf("adapters: linkedin returned no rows for %s", profileURL)
	}

	row := rows[0]
	data = model.LinkedInData{
		CompanyName:   getString(row, "name", "companyName"),
		Description:   getString(row, "description", "about"),
		Website:       getString(row, "website"),
		Industry:      getString(row, "industry"),
		CompanySize:   getString(row, "companySize", "company_size"),
		Headquarters:  getString(row, "headquarters"),
		Founded:       getInt(row, "founded", "foundedYear"),
		Specialties:   getStringSlice(row, "specialties"),
		Followers:     getInt(row, "followers", "followerCount"),
		EmployeeCount: getInt(row, "employeeCount", "employee_count"),
		Address:       getString(row, "address"),
	}

	// Some scrapers nest the address under the headquarters object.
	if data.Address == "" {
		hq := getMap(row, "headquarter")
		data.Address = getString(hq, "fullAddress", "line1")
	}

	data.Normalize()
	return data, nil
}
