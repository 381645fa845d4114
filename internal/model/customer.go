package model

import "time"

// FederationUnits lists the 27 Brazilian state abbreviations
var FederationUnits = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO",
	"MA", "MT", "MS", "MG", "PA", "PB", "PR", "PE", "PI",
	"RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

// Customer represents a dealership customer
type Customer struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	IdentDocument string     `json:"ident_document"` // formatted CPF, 14 chars
	BirthDate     *time.Time `json:"birth_date"`
	StreetName    string     `json:"street_name"`
	HouseNumber   string     `json:"house_number"`
	Complements   *string    `json:"complements"`
	District      string     `json:"district"`
	Municipality  string     `json:"municipality"`
	State         string     `json:"state"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
