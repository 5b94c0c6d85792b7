package dto

type ProductFilters struct {
	Karat       string
	SearchQuery string // name, short description or external product id
	Page        int
	PageSize    int
}
