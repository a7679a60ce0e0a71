package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Category string

const (
	CategoryPlato   Category = "plato"
	CategoryBebida  Category = "bebida"
	CategoryEntrada Category = "entrada"
	CategoryPostre  Category = "postre"
)

var (
	ErrItemNotFound    = errors.New("menu item not found")
	ErrInvalidCategory = errors.New("invalid category")
)

// MenuItem is a dish document in the menu collection. Field names match the
// existing Firestore documents.
type MenuItem struct {
	ID          string   `firestore:"ID_dish" json:"ID_dish"`
	Dish        string   `firestore:"dish" json:"dish"`
	Description string   `firestore:"description" json:"description"`
	Price       float64  `firestore:"price" json:"price"`
	Category    Category `firestore:"type" json:"type"`
	ImagePath   string   `firestore:"url,omitempty" json:"url,omitempty"`
}

func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryPlato, CategoryBebida, CategoryEntrada, CategoryPostre:
		return Category(strings.ToLower(strings.TrimSpace(s))), nil
	}
	return "", ErrInvalidCategory
}

// Validate applies the checks the admin screens skipped.
func (m *MenuItem) Validate() error {
	if strings.TrimSpace(m.Dish) == "" {
		return fmt.Errorf("dish name is required")
	}
	if m.Price <= 0 {
		return fmt.Errorf("price must be greater than zero")
	}
	if _, err := ParseCategory(string(m.Category)); err != nil {
		return err
	}
	return nil
}
