package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/mail"
	"strconv"
	"strings"

	"github.com/victorazesc/appseed-sub000/internal/domain"
)

const maxNameLength = 200

// Payload is a validated webhook body.
type Payload struct {
	Name     string
	Email    *string // lower-cased
	Phone    *string
	Company  *string
	Value    *int64 // minor currency units
	Stage    *string
	Origin   *string
	Metadata map[string]any
}

// Contact returns the contact fields written to the lead.
func (p Payload) Contact() domain.Contact {
	return domain.Contact{
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Company:    p.Company,
		ValueCents: p.Value,
	}
}

type rawPayload struct {
	Name     *string         `json:"name"`
	Email    *string         `json:"email"`
	Phone    *string         `json:"phone"`
	Company  *string         `json:"company"`
	Value    json.RawMessage `json:"value"`
	Stage    *string         `json:"stage"`
	Origin   *string         `json:"origin"`
	Metadata json.RawMessage `json:"metadata"`
}

// ParsePayload decodes and validates a webhook body. All violated rules are
// collected; the first one is what callers usually report.
func ParsePayload(body []byte) (Payload, error) {
	var raw rawPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		return Payload{}, decodeError(err)
	}

	var (
		p    Payload
		errs []domain.FieldError
	)

	if raw.Name == nil || strings.TrimSpace(*raw.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else {
		p.Name = strings.TrimSpace(*raw.Name)
		if len(p.Name) > maxNameLength {
			errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
		}
	}

	if email := domain.TrimOrNil(raw.Email); email != nil {
		normalized := domain.NormalizeEmail(*email)
		if addr, err := mail.ParseAddress(normalized); err != nil || addr.Address != normalized {
			errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
		}
		p.Email = &normalized
	}

	p.Phone = domain.TrimOrNil(raw.Phone)
	p.Company = domain.TrimOrNil(raw.Company)
	p.Stage = domain.TrimOrNil(raw.Stage)
	p.Origin = domain.TrimOrNil(raw.Origin)

	if present(raw.Value) {
		v, err := strconv.ParseInt(string(bytes.TrimSpace(raw.Value)), 10, 64)
		switch {
		case err != nil:
			errs = append(errs, domain.FieldError{Field: "value", Message: "must be an integer amount in minor units"})
		case v < 0:
			errs = append(errs, domain.FieldError{Field: "value", Message: "must be >= 0"})
		default:
			p.Value = &v
		}
	}

	if present(raw.Metadata) {
		if err := json.Unmarshal(raw.Metadata, &p.Metadata); err != nil || p.Metadata == nil {
			errs = append(errs, domain.FieldError{Field: "metadata", Message: "must be an object"})
			p.Metadata = nil
		}
	}

	if len(errs) > 0 {
		return Payload{}, domain.NewValidationErrors(errs)
	}
	return p, nil
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return domain.NewValidationError("body", "must be a JSON object")
		}
		return domain.NewValidationError(typeErr.Field, "must be a string")
	}
	return domain.NewValidationError("body", "malformed JSON")
}
