package response

import "time"

// CustomerResponse 客户
type CustomerResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	Pincode     string    `json:"pincode,omitempty"`
	Role        string    `json:"role"`
	Plan        string    `json:"plan"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SessionResponse 登录结果
type SessionResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Customer  *CustomerResponse `json:"customer"`
}

// MessageResponse 仅包含提示信息的响应
type MessageResponse struct {
	Message string `json:"message"`
}
