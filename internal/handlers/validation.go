package handlers

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// IdempotencyKeyHeader is accepted when the body carries no idempotencyKey.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

var registerOnce sync.Once

// registerValidators installs the custom binding rules on gin's validator.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("currency_code", validCurrencyCode)
		}
	})
}

// validCurrencyCode accepts three ASCII letters in either case.
func validCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// bindErrorMessage turns a binding failure into a client message naming the
// offending fields.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
			case "max":
				parts = append(parts, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
			case "min":
				parts = append(parts, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
			case "currency_code":
				parts = append(parts, fmt.Sprintf("%s must be a 3-letter currency code", fe.Field()))
			case "iso3166_1_alpha2":
				parts = append(parts, fmt.Sprintf("%s must be a 2-letter country code", fe.Field()))
			default:
				parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
		}
		return "Validation failed: " + strings.Join(parts, "; ")
	}
	return "Invalid request format: " + err.Error()
}

// resolveIdempotencyKey prefers the body field and falls back to the header.
// Both being set to different values is rejected.
func resolveIdempotencyKey(c *gin.Context, bodyKey string) (string, error) {
	header := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	bodyKey = strings.TrimSpace(bodyKey)
	switch {
	case bodyKey != "" && header != "" && bodyKey != header:
		return "", errors.New("idempotencyKey and the Idempotency-Key header disagree")
	case bodyKey != "":
		return bodyKey, nil
	case len(header) > maxIdempotencyKeyLen:
		return "", fmt.Errorf("Idempotency-Key must be at most %d characters", maxIdempotencyKeyLen)
	default:
		return header, nil
	}
}
