package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Custom binding tags
const (
	TagStudentNumber = "student_number"
	TagImageURL      = "image_url"
)

// Validation rule patterns
var (
	// StudentNumberPattern accepts 1 to 18 digits so the value fits a BIGINT
	StudentNumberPattern = `^[0-9]{1,18}$`

	// ImageURLPattern accepts absolute http(s) URLs
	ImageURLPattern = `^https?://\S+$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	StudentNumber *regexp.Regexp
	ImageURL      *regexp.Regexp
}{
	StudentNumber: regexp.MustCompile(StudentNumberPattern),
	ImageURL:      regexp.MustCompile(ImageURLPattern),
}

// IsImageURL reports whether raw is empty or an http(s) URL. Empty clears
// the image.
func IsImageURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	return raw == "" || CompiledPatterns.ImageURL.MatchString(raw)
}

// IsStudentNumber reports whether raw is a plausible student number.
func IsStudentNumber(raw string) bool {
	return CompiledPatterns.StudentNumber.MatchString(strings.TrimSpace(raw))
}

func validateStudentNumber(fl validator.FieldLevel) bool {
	return IsStudentNumber(fl.Field().String())
}

func validateImageURL(fl validator.FieldLevel) bool {
	return IsImageURL(fl.Field().String())
}

// Register installs the custom tags on v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(TagStudentNumber, validateStudentNumber); err != nil {
		return err
	}
	return v.RegisterValidation(TagImageURL, validateImageURL)
}
