package core

import (
	"errors"

	"github.com/agenthands/tagtally/internal/core/common"
	"github.com/agenthands/tagtally/internal/llm"
	"github.com/agenthands/tagtally/internal/media"
)

// IsParseError reports whether err carries a *common.ParseError.
func IsParseError(err error) bool {
	var pe *common.ParseError
	return errors.As(err, &pe)
}

// IsServiceError reports whether err carries a *llm.ServiceError.
func IsServiceError(err error) bool {
	var se *llm.ServiceError
	return errors.As(err, &se)
}

// IsInvalidInput reports whether err carries a *media.InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *media.InvalidInputError
	return errors.As(err, &ie)
}
