package dto

type DetailInput struct {
	Slug string
	// Currency for converted prices; empty means the default display currency.
	Currency string
}
