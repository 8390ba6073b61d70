package dwolla

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRequest is wrapped by every validation failure.
var ErrInvalidRequest = errors.New("invalid request")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})

	return validate
}

// ValidateStruct checks the validate tags of a request or configuration value.
func ValidateStruct(value interface{}) error {
	err := validatorInstance().Struct(value)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, fmt.Sprintf("%s failed %q", fieldErr.Namespace(), fieldErr.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(fields, ", "))
}
