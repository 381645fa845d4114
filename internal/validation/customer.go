package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"dealership/internal/model"

	"github.com/klassmann/cpfcnpj"
)

const (
	identDocumentLength = 14 // formatted CPF: 000.000.000-00
	phoneLength         = 15 // masked phone: (00) 00000-0000
	minCustomerAge      = 18
	maxCustomerAge      = 120
)

// CustomerData is the normalized output of customer validation, the same
// tri-state shape CarData uses for partial updates.
type CustomerData struct {
	Name          *string
	IdentDocument *string
	BirthDate     *time.Time
	StreetName    *string
	HouseNumber   *string
	Complements   *string
	District      *string
	Municipality  *string
	State         *string
	Phone         *string
	Email         *string

	BirthDateSet   bool
	ComplementsSet bool
}

// CustomerValidator checks raw customer input. The birth-date window (18 to
// 120 years old) moves with the current time, so the clock is injected.
type CustomerValidator struct {
	now func() time.Time
}

func NewCustomerValidator(now func() time.Time) *CustomerValidator {
	if now == nil {
		now = time.Now
	}
	return &CustomerValidator{now: now}
}

func (v *CustomerValidator) Validate(raw map[string]any) (*CustomerData, FieldErrors) {
	return v.validate(raw, false)
}

func (v *CustomerValidator) ValidatePartial(raw map[string]any) (*CustomerData, FieldErrors) {
	return v.validate(raw, true)
}

func (v *CustomerValidator) validate(raw map[string]any, partial bool) (*CustomerData, FieldErrors) {
	var errs FieldErrors
	data := &CustomerData{}

	if name := checkBoundedText(raw, "name", 5, 100, partial, &errs); name != nil {
		if !strings.Contains(*name, " ") {
			errs.add("name", "name must contain a space separating first and last name")
		} else {
			data.Name = name
		}
	}

	if val, ok := raw["ident_document"]; !ok || val == nil {
		if !partial {
			errs.add("ident_document", "ident_document is required")
		}
	} else if s, isStr := asString(val); !isStr {
		errs.add("ident_document", "ident_document must be a string")
	} else {
		// the front-end mask pads unfilled positions with underscores
		doc := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
		if utf8.RuneCountInString(doc) != identDocumentLength {
			errs.add("ident_document", fmt.Sprintf("ident_document must have exactly %d characters", identDocumentLength))
		} else if !cpfcnpj.ValidateCPF(string(cpfcnpj.NewCPF(doc))) {
			errs.add("ident_document", "ident_document is not a valid CPF")
		} else {
			data.IdentDocument = &doc
		}
	}

	if val, ok := raw["birth_date"]; !absent(val, ok) {
		data.BirthDateSet = true
		d, parsed := asDate(val)
		if !parsed {
			errs.add("birth_date", "birth_date is not a valid date")
		} else {
			day := dateOnly(d)
			now := v.now()
			oldest := dateOnly(now.AddDate(-maxCustomerAge, 0, 0))
			youngest := dateOnly(now.AddDate(-minCustomerAge, 0, 0))
			if day.Before(oldest) {
				errs.add("birth_date", "birth_date is too far in the past")
			} else if day.After(youngest) {
				errs.add("birth_date", fmt.Sprintf("customer must be at least %d years old", minCustomerAge))
			} else {
				data.BirthDate = &day
			}
		}
	} else if ok {
		data.BirthDateSet = true
	}

	data.StreetName = checkBoundedText(raw, "street_name", 1, 40, partial, &errs)
	data.HouseNumber = checkBoundedText(raw, "house_number", 1, 10, partial, &errs)

	if val, ok := raw["complements"]; !absent(val, ok) {
		data.ComplementsSet = true
		if s, isStr := asString(val); !isStr {
			errs.add("complements", "complements must be a string")
		} else {
			c := strings.TrimSpace(s)
			if utf8.RuneCountInString(c) > 20 {
				errs.add("complements", "complements must have at most 20 characters")
			} else {
				data.Complements = &c
			}
		}
	} else if ok {
		data.ComplementsSet = true
	}

	data.District = checkBoundedText(raw, "district", 1, 25, partial, &errs)
	data.Municipality = checkBoundedText(raw, "municipality", 1, 40, partial, &errs)

	if val, ok := raw["state"]; !ok || val == nil {
		if !partial {
			errs.add("state", "state is required")
		}
	} else if s, isStr := asString(val); !isStr {
		errs.add("state", "state must be a string")
	} else {
		uf := strings.ToUpper(strings.TrimSpace(s))
		if !containsString(model.FederationUnits, uf) {
			errs.add("state", "state is not a valid federation unit")
		} else {
			data.State = &uf
		}
	}

	if val, ok := raw["phone"]; !ok || val == nil {
		if !partial {
			errs.add("phone", "phone is required")
		}
	} else if s, isStr := asString(val); !isStr {
		errs.add("phone", "phone must be a string")
	} else {
		phone := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
		if utf8.RuneCountInString(phone) != phoneLength {
			errs.add("phone", fmt.Sprintf("phone must have exactly %d characters", phoneLength))
		} else {
			data.Phone = &phone
		}
	}

	if val, ok := raw["email"]; !ok || val == nil {
		if !partial {
			errs.add("email", "email is required")
		}
	} else if s, isStr := asString(val); !isStr {
		errs.add("email", "email must be a string")
	} else {
		email := strings.TrimSpace(s)
		if _, err := mail.ParseAddress(email); err != nil {
			errs.add("email", "email is invalid")
		} else {
			data.Email = &email
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return data, nil
}
