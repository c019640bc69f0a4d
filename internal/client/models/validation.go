package models

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// ValidationError collects field-level problems detected before a request
// is sent. It is never produced by the server.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

var (
	digitsRe = regexp.MustCompile(`^\d+$`)
	phoneRe  = regexp.MustCompile(`^\d{7,15}$`)
)

const maxCustomerAge = 120

// ValidateCustomer checks a create (partial=false) or update (partial=true)
// payload. On update, absent fields are skipped but present ones must be valid.
func ValidateCustomer(in CustomerInput, partial bool, now time.Time) error {
	v := &ValidationError{}

	required := func(field string, present bool, msg string) bool {
		if !present {
			if !partial {
				v.add(field, msg)
			}
			return false
		}
		return true
	}

	if required("dni_type", in.DocumentType != nil, "document type is required") && !in.DocumentType.Valid() {
		v.add("dni_type", fmt.Sprintf("unknown document type %q", *in.DocumentType))
	}

	if required("dni_number", in.DocumentNumber != nil, "document number is required") {
		n := strings.TrimSpace(*in.DocumentNumber)
		switch {
		case n == "":
			v.add("dni_number", "document number is required")
		case !digitsRe.MatchString(n):
			v.add("dni_number", "document number must contain digits only")
		}
	}

	if required("first_name", in.FirstName != nil, "first name is required") && strings.TrimSpace(*in.FirstName) == "" {
		v.add("first_name", "first name is required")
	}

	if required("last_name", in.LastName != nil, "last name is required") && strings.TrimSpace(*in.LastName) == "" {
		v.add("last_name", "last name is required")
	}

	if required("birth_date", in.BirthDate != nil && !in.BirthDate.IsZero(), "birth date is required") {
		age := now.Year() - in.BirthDate.Year()
		if age < 0 || age > maxCustomerAge {
			v.add("birth_date", "birth date is not valid")
		}
	}

	if required("gender", in.Gender != nil, "gender is required") && !in.Gender.Valid() {
		v.add("gender", fmt.Sprintf("unknown gender %q", *in.Gender))
	}

	if required("phone", in.Phone != nil, "phone is required") {
		p := strings.TrimSpace(*in.Phone)
		switch {
		case p == "":
			v.add("phone", "phone is required")
		case !phoneRe.MatchString(p):
			v.add("phone", "phone must have between 7 and 15 digits")
		}
	}

	if in.AlternativePhone != nil {
		if p := strings.TrimSpace(*in.AlternativePhone); p != "" && !phoneRe.MatchString(p) {
			v.add("alternative_phone", "alternative phone must have between 7 and 15 digits")
		}
	}

	if in.Status != nil && !in.Status.Valid() {
		v.add("status", fmt.Sprintf("unknown status %q", *in.Status))
	}

	return v.orNil()
}

// ValidateBiometricUpload checks a biometric registration. maxBytes <= 0
// disables the size check.
func ValidateBiometricUpload(u BiometricUpload, maxBytes int64) error {
	v := &ValidationError{}

	if strings.TrimSpace(u.CustomerID) == "" {
		v.add("customer_id", "customer is required")
	}

	switch {
	case u.Type == "":
		v.add("biometric_type", "biometric type is required")
	case !u.Type.Valid():
		v.add("biometric_type", fmt.Sprintf("unknown biometric type %q", u.Type))
	}

	switch {
	case len(u.Content) == 0:
		v.add("file", "file is required")
	case maxBytes > 0 && int64(len(u.Content)) > maxBytes:
		v.add("file", fmt.Sprintf("file exceeds %d MB", maxBytes/1024/1024))
	}

	if u.QualityScore != nil && (*u.QualityScore < 0 || *u.QualityScore > 100) {
		v.add("quality_score", "quality score must be between 0 and 100")
	}

	return v.orNil()
}
