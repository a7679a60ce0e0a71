package http

type createItemReq struct {
	Dish        string  `json:"dish"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Type        string  `json:"type"`
	URL         string  `json:"url,omitempty"`
}

type updateItemReq struct {
	Dish        *string  `json:"dish,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Type        *string  `json:"type,omitempty"`
	URL         *string  `json:"url,omitempty"`
}
