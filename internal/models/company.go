package models

// CompanyProfile is the normalized view of a Finnish Trade Register (YTJ)
// company record.
type CompanyProfile struct {
	// Finnish Business ID (Y-tunnus), e.g. 0116297-6
	BusinessID string `json:"business_id" yaml:"business_id" validate:"required"`

	// All operating names in registry order (current, previous, parallel, auxiliary)
	OperatingNames []string `json:"operating_names" yaml:"operating_names"`

	// Main line of business as a TOL 2008 code
	MainBusinessLineCode *string `json:"main_business_line_code" yaml:"main_business_line_code" validate:"omitempty,min=1"`

	RegistrationDate Date `json:"registration_date" yaml:"registration_date" validate:"required"`

	Website *string `json:"website" yaml:"website" validate:"omitempty,http_url"`
}

// Validate checks the profile against its field constraints.
func (p *CompanyProfile) Validate() error {
	if p.OperatingNames == nil {
		p.OperatingNames = []string{}
	}
	return validate.Struct(p)
}
