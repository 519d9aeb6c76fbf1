package handler

import (
	"time"

	"github.com/msomdec/campus-market/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash never
// leaves the server.
type UserDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	College   string `json:"college"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		College:   u.College,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// ItemDTO is the JSON representation of a listing.
type ItemDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Mode          string  `json:"mode"`
	Price         float64 `json:"price"`
	Description   string  `json:"description,omitempty"`
	Image         string  `json:"image,omitempty"`
	SellerID      string  `json:"sellerId"`
	SellerName    string  `json:"sellerName"`
	SellerCollege string  `json:"sellerCollege"`
	SellerEmail   string  `json:"sellerEmail"`
	CreatedAt     string  `json:"createdAt"`
}

func toItemDTO(i domain.Item) ItemDTO {
	return ItemDTO{
		ID:            i.ID,
		Name:          i.Name,
		Category:      string(i.Category),
		Mode:          string(i.Mode),
		Price:         i.Price,
		Description:   i.Description,
		Image:         i.Image,
		SellerID:      i.SellerID,
		SellerName:    i.SellerName,
		SellerCollege: i.SellerCollege,
		SellerEmail:   i.SellerEmail,
		CreatedAt:     i.CreatedAt.Format(time.RFC3339),
	}
}

func toItemDTOs(items []domain.Item) []ItemDTO {
	dtos := make([]ItemDTO, len(items))
	for i, item := range items {
		dtos[i] = toItemDTO(item)
	}
	return dtos
}
