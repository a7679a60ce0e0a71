package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order state")
	ErrInvalidTransition = errors.New("illegal state transition")
	ErrTotalMismatch     = errors.New("client total does not match menu prices")
)

// Line is one ordered dish. The dish name is denormalized for display; the
// stable dish document id travels with it so renames don't orphan history.
type Line struct {
	DishID   string `firestore:"ID_dish,omitempty" json:"ID_dish,omitempty"`
	Dish     string `firestore:"dish" json:"dish"`
	Quantity int    `firestore:"quantity" json:"quantity"`
}

// Order is a document in the orders collection. Field names match the
// existing documents.
type Order struct {
	ID              string   `firestore:"ID_Order" json:"ID_Order"`
	ClientID        string   `firestore:"ID_Client" json:"ID_Client"`
	Date            string   `firestore:"date" json:"date"`
	Lines           []Line   `firestore:"order" json:"order"`
	State           Status   `firestore:"state" json:"state"`
	Table           int      `firestore:"table" json:"table"`
	Total           float64  `firestore:"total" json:"total"`
	Allergies       []string `firestore:"allergies,omitempty" json:"allergies,omitempty"`
	StatusUpdatedAt string   `firestore:"statusUpdatedAt,omitempty" json:"statusUpdatedAt,omitempty"`
}

// Validate applies creation-time business rules.
func (o *Order) Validate() error {
	if o.ClientID == "" {
		return fmt.Errorf("client id is required")
	}
	if o.Table <= 0 {
		return fmt.Errorf("table number is required")
	}
	if len(o.Lines) == 0 {
		return fmt.Errorf("order must have at least one line")
	}
	for _, line := range o.Lines {
		if line.Dish == "" {
			return fmt.Errorf("line dish name is required")
		}
		if line.Quantity < 1 {
			return fmt.Errorf("line quantity must be at least 1")
		}
	}
	return nil
}

// ComputeTotal sums price x quantity over the lines given a price per dish id.
func ComputeTotal(lines []Line, priceByDish map[string]float64) float64 {
	total := 0.0
	for _, line := range lines {
		total += priceByDish[line.DishID] * float64(line.Quantity)
	}
	return math.Round(total*100) / 100
}

// TotalsMatch compares a client-submitted total against the server total
// with a one-cent tolerance.
func TotalsMatch(client, server float64) bool {
	return math.Abs(client-server) <= 0.01
}
