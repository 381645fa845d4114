package validation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomerInput() map[string]any {
	return map[string]any{
		"name":           "Maria Silva",
		"ident_document": "529.982.247-25",
		"birth_date":     "1990-04-12",
		"street_name":    "Rua das Flores",
		"house_number":   "100",
		"district":       "Centro",
		"municipality":   "São Paulo",
		"state":          "SP",
		"phone":          "(11) 99876-5432",
		"email":          "maria@example.com",
	}
}

func TestCustomerValidator_ValidInput(t *testing.T) {
	v := NewCustomerValidator(fixedClock)

	data, errs := v.Validate(validCustomerInput())
	require.Nil(t, errs)
	assert.Equal(t, "Maria Silva", *data.Name)
	assert.Equal(t, "529.982.247-25", *data.IdentDocument)
	assert.Equal(t, "SP", *data.State)
	assert.Equal(t, time.Date(1990, time.April, 12, 0, 0, 0, 0, time.UTC), *data.BirthDate)
}

func TestCustomerValidator_NameNeedsSpace(t *testing.T) {
	v := NewCustomerValidator(fixedClock)

	raw := validCustomerInput()
	raw["name"] = "Madonna"

	_, errs := v.Validate(raw)
	require.NotEmpty(t, errs)
	assert.Equal(t, "name", errs[0].Field)
	assert.Contains(t, errs[0].Message, "space")
}

func TestCustomerValidator_NameTooShort(t *testing.T) {
	v := NewCustomerValidator(fixedClock)

	raw := validCustomerInput()
	raw["name"] = "Ana"

	_, errs := v.Validate(raw)
	require.NotEmpty(t, errs)
	assert.Equal(t, "name", errs[0].Field)
}

func TestCustomerValidator_CPFCheckDigits(t *testing.T) {
	v := NewCustomerValidator(fixedClock)

	raw := validCustomerInput()
	raw["ident_document"] = "123.456.789-00" // right length, wrong digits

	_, errs := v.Validate(raw)
	require.NotEmpty(t, errs)
	assert.Equal(t, "ident_document", errs[0].Field)
	assert.Contains(t, errs[0].Message, "CPF")
}

func TestCustomerValidator_CPFMaskUnderscoresStripped(t *testing.T) {
	v := NewCustomerValidator(fixedClock)

	// an unfinished mask leaves underscores, which shortens the cleaned value
	raw := validCustomerInput()
	raw["ident_document"] = "529.982.247-2_"

	_, errs := v.Validate(raw)
	require.NotEmpty(t, errs)
	assert.Equal(t, "ident_document", errs[0].Field)
	assert.Contains(t, errs[0].Message, "14")
}

func TestCustomerValidator_BirthDateAgeBounds(t *testing.T) {
	v := NewCustomerValidator(fixedClock)

	tests := []struct {
		name  string
		date  string
		valid bool
	}{
		{"too_young", fixedNow.AddDate(-18, 0, 1).Format("2006-01-02"), false},
		{"exactly_18", fixedNow.AddDate(-18, 0, 0).Format("2006-01-02"), true},
		{"adult", "1990-04-12", true},
		{"exactly_120", fixedNow.AddDate(-120, 0, 0).Format("2006-01-02"), true},
		{"too_old", fixedNow.AddDate(-120, 0, -1).Format("2006-01-02"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validCustomerInput()
			raw["birth_date"] = tt.date

			_, errs := v.Validate(raw)
			if tt.valid {
				assert.Nil(t, errs)
			} else {
				require.NotEmpty(t, errs)
				assert.Equal(t, "birth_date", errs[0].Field)
			}
		})
	}
}

func TestCustomerValidator_BirthDateOptional(t *testing.T) {
	v := NewCustomerValidator(fixedClock)

	raw := validCustomerInput()
	delete(raw, "birth_date")

	data, errs := v.Validate(raw)
	require.Nil(t, errs)
	assert.Nil(t, data.BirthDate)
}

func TestCustomerValidator_StateEnum(t *testing.T) {
	v := NewCustomerValidator(fixedClock)

	raw := validCustomerInput()
	raw["state"] = "XX"

	_, errs := v.Validate(raw)
	require.NotEmpty(t, errs)
	assert.Equal(t, "state", errs[0].Field)
}

func TestCustomerValidator_PhoneLength(t *testing.T) {
	v := NewCustomerValidator(fixedClock)

	raw := validCustomerInput()
	raw["phone"] = "(11) 9876-5432" // 14 chars, landline mask

	_, errs := v.Validate(raw)
	require.NotEmpty(t, errs)
	assert.Equal(t, "phone", errs[0].Field)
	assert.Contains(t, errs[0].Message, fmt.Sprint(phoneLength))
}

func TestCustomerValidator_EmailFormat(t *testing.T) {
	v := NewCustomerValidator(fixedClock)

	raw := validCustomerInput()
	raw["email"] = "not-an-email"

	_, errs := v.Validate(raw)
	require.NotEmpty(t, errs)
	assert.Equal(t, "email", errs[0].Field)
}

func TestCustomerValidator_CollectsAllViolations(t *testing.T) {
	v := NewCustomerValidator(fixedClock)

	raw := validCustomerInput()
	raw["name"] = "Ana"
	raw["state"] = "XX"
	raw["email"] = "nope"

	_, errs := v.Validate(raw)
	require.Len(t, errs, 3)
	byField := errs.ByField()
	assert.Contains(t, byField, "name")
	assert.Contains(t, byField, "state")
	assert.Contains(t, byField, "email")
}

func TestCustomerValidator_PartialUpdate(t *testing.T) {
	v := NewCustomerValidator(fixedClock)

	data, errs := v.ValidatePartial(map[string]any{
		"municipality": "Campinas",
	})
	require.Nil(t, errs)
	assert.Nil(t, data.Name)
	assert.Equal(t, "Campinas", *data.Municipality)
}
