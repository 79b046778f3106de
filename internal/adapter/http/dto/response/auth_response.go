package response

import (
	"time"

	"servitec/internal/domain/entities"
)

type StaffResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

func FromStaff(s entities.Staff) StaffResponse {
	return StaffResponse{
		ID:        s.ID,
		Email:     s.Email,
		FullName:  s.FullName,
		Roles:     s.Roles,
		CreatedAt: s.CreatedAt,
	}
}

type StaffLoginResponse struct {
	Token string        `json:"token"`
	Staff StaffResponse `json:"staff"`
}

type ClientResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromClient(c entities.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Email:     c.Email,
		FullName:  c.FullName,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}
