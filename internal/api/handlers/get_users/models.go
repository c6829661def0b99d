package get_users

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// UserResponse HTTP модель пользователя для операторских листингов
type UserResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	Phone        *string `json:"phone,omitempty"`
	Category     string  `json:"category"`
	Verification string  `json:"verification"`
	Role         string  `json:"role"`
	Active       bool    `json:"active"`
	CreatedAt    string  `json:"createdAt"`
}

// UsersResponse HTTP модель списка пользователей
type UsersResponse struct {
	Users []UserResponse `json:"users"`
	Page  int            `json:"page"`
}

// FromDomain конвертирует пользователей в HTTP response
func FromDomain(users []*domain.User, page int) *UsersResponse {
	resp := &UsersResponse{Users: make([]UserResponse, 0, len(users)), Page: page}
	for _, u := range users {
		resp.Users = append(resp.Users, UserResponse{
			ID:           u.ID,
			Name:         u.Name,
			Surname:      u.Surname,
			Phone:        u.Phone,
			Category:     string(u.Category),
			Verification: string(u.Verification),
			Role:         string(u.Role),
			Active:       u.Active,
			CreatedAt:    u.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}
