package model

import "time"

// AllowedColors is the closed set of accepted car colors.
var AllowedColors = []string{
	"AMARELO", "AZUL", "BRANCO", "CINZA", "DOURADO", "LARANJA",
	"MARROM", "PRATA", "PRETO", "ROSA", "ROXO", "VERDE", "VERMELHO",
}

// Car represents a vehicle in the dealership inventory
type Car struct {
	ID              int64      `json:"id"`
	Brand           string     `json:"brand"`
	Model           string     `json:"model"`
	Color           string     `json:"color"`
	YearManufacture int        `json:"year_manufacture"`
	Imported        bool       `json:"imported"`
	Plates          string     `json:"plates"`
	SellingDate     *time.Time `json:"selling_date"`           // nil while unsold
	SellingPrice    *float64   `json:"selling_price"`          // nil while unsold
	CustomerID      *int64     `json:"customer_id"`            // nil while unsold
	CreatedUserID   int64      `json:"created_user_id"`
	UpdatedUserID   int64      `json:"updated_user_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relations, attached only when requested via ?include=
	Customer    *Customer `json:"customer,omitempty"`
	CreatedUser *User     `json:"created_user,omitempty"`
	UpdatedUser *User     `json:"updated_user,omitempty"`
}

// CarIncludes selects which relations FindAll/FindByID should attach
type CarIncludes struct {
	Customer    bool
	CreatedUser bool
	UpdatedUser bool
}
