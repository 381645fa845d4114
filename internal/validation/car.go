package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"dealership/internal/model"
)

const (
	minYear         = 1960
	minSellingPrice = 5000
	maxSellingPrice = 5000000
	platesLength    = 8
)

// storeOpeningDate is the floor for selling_date: the store opened on
// 2020-03-20 and no sale can predate it.
var storeOpeningDate = time.Date(2020, time.March, 20, 0, 0, 0, 0, time.UTC)

// CarData is the normalized output of car validation. Required fields are
// non-nil after a successful full validation; in partial mode a nil field
// with its Set flag down means the field was not supplied at all, while the
// Set flag up with a nil value means it was explicitly cleared.
type CarData struct {
	Brand           *string
	Model           *string
	Color           *string
	YearManufacture *int
	Imported        *bool
	Plates          *string
	SellingDate     *time.Time
	SellingPrice    *float64
	CustomerID      *int64

	SellingDateSet  bool
	SellingPriceSet bool
	CustomerIDSet   bool
}

// CarValidator checks raw car input against the schema. The year and date
// ceilings depend on the current time, so the clock is injected to keep the
// bounds testable.
type CarValidator struct {
	now func() time.Time
}

func NewCarValidator(now func() time.Time) *CarValidator {
	if now == nil {
		now = time.Now
	}
	return &CarValidator{now: now}
}

// Validate runs the full schema: every required field must be present.
// It returns either normalized data or the complete list of violations,
// never both.
func (v *CarValidator) Validate(raw map[string]any) (*CarData, FieldErrors) {
	return v.validate(raw, false)
}

// ValidatePartial runs the schema with all fields optional, for sparse
// updates. Only supplied fields are checked and normalized.
func (v *CarValidator) ValidatePartial(raw map[string]any) (*CarData, FieldErrors) {
	return v.validate(raw, true)
}

func (v *CarValidator) validate(raw map[string]any, partial bool) (*CarData, FieldErrors) {
	var errs FieldErrors
	data := &CarData{}

	data.Brand = checkBoundedText(raw, "brand", 1, 25, partial, &errs)
	data.Model = checkBoundedText(raw, "model", 1, 25, partial, &errs)

	if val, ok := raw["color"]; !ok || val == nil {
		if !partial {
			errs.add("color", "color is required")
		}
	} else if s, ok := asString(val); !ok {
		errs.add("color", "color must be a string")
	} else {
		color := strings.TrimSpace(s)
		if !containsString(model.AllowedColors, color) {
			errs.add("color", "color is invalid, must be one of: "+strings.Join(model.AllowedColors, ", "))
		} else {
			data.Color = &color
		}
	}

	if val, ok := raw["year_manufacture"]; !ok || val == nil {
		if !partial {
			errs.add("year_manufacture", "year_manufacture is required")
		}
	} else if n, ok := asInt(val); !ok {
		errs.add("year_manufacture", "year_manufacture must be an integer")
	} else if n < minYear {
		errs.add("year_manufacture", fmt.Sprintf("year_manufacture must be %d or later", minYear))
	} else if current := v.now().Year(); n > int64(current) {
		errs.add("year_manufacture", fmt.Sprintf("year_manufacture cannot be later than %d", current))
	} else {
		year := int(n)
		data.YearManufacture = &year
	}

	if val, ok := raw["imported"]; !ok || val == nil {
		if !partial {
			errs.add("imported", "imported is required and must be true or false")
		}
	} else if b, ok := asBool(val); !ok {
		errs.add("imported", "imported must be true or false")
	} else {
		data.Imported = &b
	}

	if val, ok := raw["plates"]; !ok || val == nil {
		if !partial {
			errs.add("plates", "plates is required")
		}
	} else if s, ok := asString(val); !ok {
		errs.add("plates", "plates must be a string")
	} else {
		plates := strings.TrimSpace(s)
		if utf8.RuneCountInString(plates) != platesLength {
			errs.add("plates", fmt.Sprintf("plates must have exactly %d characters", platesLength))
		} else {
			data.Plates = &plates
		}
	}

	if val, ok := raw["selling_date"]; !absent(val, ok) {
		data.SellingDateSet = true
		d, parsed := asDate(val)
		if !parsed {
			errs.add("selling_date", "selling_date is not a valid date")
		} else {
			day := dateOnly(d)
			today := dateOnly(v.now())
			if day.Before(storeOpeningDate) || day.After(today) {
				errs.add("selling_date", "selling_date must be between 2020-03-20 and today")
			} else {
				data.SellingDate = &day
			}
		}
	} else if ok {
		// explicit null clears the field on update
		data.SellingDateSet = true
	}

	if val, ok := raw["selling_price"]; !absent(val, ok) {
		data.SellingPriceSet = true
		p, parsed := asNumber(val)
		if !parsed {
			errs.add("selling_price", "selling_price must be a number")
		} else if p < minSellingPrice || p > maxSellingPrice {
			errs.add("selling_price", fmt.Sprintf("selling_price must be between %d and %d", minSellingPrice, maxSellingPrice))
		} else {
			data.SellingPrice = &p
		}
	} else if ok {
		data.SellingPriceSet = true
	}

	if val, ok := raw["customer_id"]; !absent(val, ok) {
		data.CustomerIDSet = true
		id, parsed := asInt(val)
		if !parsed || id <= 0 {
			errs.add("customer_id", "customer_id must be a positive integer")
		} else {
			data.CustomerID = &id
		}
	} else if ok {
		data.CustomerIDSet = true
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return data, nil
}

// checkBoundedText validates a required trimmed string field with rune
// length bounds and stores the normalized value.
func checkBoundedText(raw map[string]any, field string, min, max int, partial bool, errs *FieldErrors) *string {
	val, ok := raw[field]
	if !ok || val == nil {
		if !partial {
			errs.add(field, field+" is required")
		}
		return nil
	}
	s, isStr := asString(val)
	if !isStr {
		errs.add(field, field+" must be a string")
		return nil
	}
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n < min {
		errs.add(field, fmt.Sprintf("%s must have at least %d character(s)", field, min))
		return nil
	} else if n > max {
		errs.add(field, fmt.Sprintf("%s must have at most %d characters", field, max))
		return nil
	}
	return &s
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
