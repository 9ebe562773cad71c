package registry

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/ternarybob/ledgerline/internal/models"
)

// isEmptyPayload reports whether a decoded body carries nothing at all (null, {}, [] or blank).
func isEmptyPayload(data []byte) bool {
	root := gjson.ParseBytes(data)
	switch {
	case !root.Exists(), root.Type == gjson.Null:
		return true
	case root.IsObject(), root.IsArray():
		empty := true
		root.ForEach(func(_, _ gjson.Result) bool {
			empty = false
			return false
		})
		return empty
	}
	return false
}

// ParseCompanyProfile maps a raw registry response to a CompanyProfile using the first
// company listed. Names keep their order and entries without a name are skipped.
func ParseCompanyProfile(data []byte) (*models.CompanyProfile, error) {
	companies := gjson.GetBytes(data, "companies")
	if !companies.IsArray() || len(companies.Array()) == 0 {
		return nil, ErrNoCompanies
	}

	company := companies.Array()[0]
	if !company.IsObject() {
		return nil, fmt.Errorf("%w: companies[0] is not an object", ErrMissingField)
	}

	businessID := company.Get("businessId.value")
	if businessID.Type != gjson.String {
		return nil, fmt.Errorf("%w: businessId.value", ErrMissingField)
	}

	profile := &models.CompanyProfile{
		BusinessID:     businessID.String(),
		OperatingNames: []string{},
	}

	company.Get("names").ForEach(func(_, entry gjson.Result) bool {
		if name := entry.Get("name"); name.Type == gjson.String && name.String() != "" {
			profile.OperatingNames = append(profile.OperatingNames, name.String())
		}
		return true
	})

	if line := company.Get("mainBusinessLine"); line.IsObject() {
		// An empty code is kept so validation rejects it
		if code := line.Get("type"); code.Type == gjson.String {
			value := code.String()
			profile.MainBusinessLineCode = &value
		}
	}

	rawDate := company.Get("registrationDate")
	if rawDate.Type != gjson.String || rawDate.String() == "" {
		return nil, fmt.Errorf("%w: registrationDate for business_id=%s", ErrMissingField, profile.BusinessID)
	}
	registered, err := models.ParseDate(rawDate.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidDate, rawDate.String(), err)
	}
	profile.RegistrationDate = registered

	if website := company.Get("website"); website.IsObject() {
		if u := website.Get("url"); u.Type == gjson.String && u.String() != "" {
			value := u.String()
			profile.Website = &value
		}
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	return profile, nil
}
