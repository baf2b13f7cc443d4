package dto

type SubscribeInput struct {
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

type DropNotifyInput struct {
	Email string `json:"email" validate:"required,email"`
}

type StockNotifyInput struct {
	Email     string `json:"email" validate:"required,email"`
	VariantID int64  `json:"variant_id" validate:"required,gt=0"`
}

type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
