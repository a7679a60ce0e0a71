package http

import "github.com/punto-pos/pos-backend/internal/orders/domain"

type lineReq struct {
	DishID   string `json:"ID_dish"`
	Dish     string `json:"dish"`
	Quantity int    `json:"quantity"`
}

type createOrderReq struct {
	Lines     []lineReq `json:"order"`
	Table     int       `json:"table"`
	Allergies []string  `json:"allergies,omitempty"`
	Total     float64   `json:"total,omitempty"`
}

type updateOrderReq struct {
	Table     *int      `json:"table,omitempty"`
	Allergies *[]string `json:"allergies,omitempty"`
}

type transitionReq struct {
	State string `json:"state"`
}

func (r *createOrderReq) lines() []domain.Line {
	lines := make([]domain.Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, domain.Line{
			DishID:   l.DishID,
			Dish:     l.Dish,
			Quantity: l.Quantity,
		})
	}
	return lines
}
