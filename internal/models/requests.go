package models

// TextRequest is the body accepted by POST /extract.
type TextRequest struct {
	// Text is required but may be empty; pointer distinguishes absent from "".
	Text *string `json:"text" validate:"required"`
}

// Validate checks the request body.
func (r *TextRequest) Validate() error {
	return validate.Struct(r)
}

// BusinessIDRequest carries the business_id query parameter of GET /company.
type BusinessIDRequest struct {
	BusinessID string `json:"business_id" validate:"required"`
}

// Validate checks the request parameters.
func (r *BusinessIDRequest) Validate() error {
	return validate.Struct(r)
}
