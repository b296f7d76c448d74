package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateCheckoutInput checks everything that can be rejected before any
// row is written. Price/catalog resolution happens later in the usecase.
func ValidateCheckoutInput(input InitiateCheckoutInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if input.Method == "" {
		errs = append(errs, ValidationError{"method", "is required"})
	} else if !entity.IsValidPaymentMethod(input.Method) {
		errs = append(errs, ValidationError{"method", "must be one of bank, bkash, nagad, rocket, cash, card"})
	}

	if input.ServiceID == "" {
		if strings.TrimSpace(input.Name) == "" {
			errs = append(errs, ValidationError{"name", "is required when no service id is given"})
		}
		if strings.TrimSpace(input.Price) == "" {
			errs = append(errs, ValidationError{"price", "is required when no service id is given"})
		}
	}

	return errs
}

var nonDigits = regexp.MustCompile(`\D`)

// ParsePackagePrice turns a display price like "৳4,999" into whole BDT.
// A price containing the literal "custom" is the custom-quote sentinel.
func ParsePackagePrice(price string) (int64, error) {
	if strings.Contains(strings.ToLower(price), "custom") {
		return 0, &DomainError{
			Code:    CodeCustomQuote,
			Message: "this package requires a custom quote, please request a proposal instead",
		}
	}

	digits := nonDigits.ReplaceAllString(price, "")
	if digits == "" {
		return 0, ValidationError{"price", "is not a valid amount"}
	}

	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, ValidationError{"price", "is not a valid amount"}
	}
	if amount <= 0 {
		return 0, ValidationError{"price", "must be positive"}
	}
	return amount, nil
}
