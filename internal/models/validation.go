package models

import (
	"github.com/go-playground/validator/v10"
)

// validate is shared by every model; validator caches struct metadata and is
// safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())
