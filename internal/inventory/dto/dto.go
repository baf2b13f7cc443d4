package dto

type MovementFilters struct {
	VariantID    *int64
	MovementType string
	Page         int
	PageSize     int
}
