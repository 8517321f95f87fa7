package dto

// ProductResponse describes one catalog product for the storefront.
type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price"`
	Images      []string `json:"images,omitempty"`
	CategoryID  string   `json:"categoryId,omitempty"`
}
