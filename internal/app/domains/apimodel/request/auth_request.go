package request

// SignupRequest 注册请求
type SignupRequest struct {
	FirstName   string `json:"firstName" binding:"required" example:"Asha"`
	LastName    string `json:"lastName" example:"Rao"`
	CompanyName string `json:"companyName" example:"Rao Traders"`
	Phone       string `json:"phone" binding:"omitempty,numeric" example:"9876543210"`
	Email       string `json:"email" binding:"required,email" example:"asha@example.com"`
	Password    string `json:"password" binding:"required,min=8" example:"correct-horse"`
	GSTNumber   string `json:"gstNumber"`
	Address     string `json:"address"`
	State       string `json:"state"`
	Pincode     string `json:"pincode" binding:"omitempty,len=6,numeric" example:"560001"`
}

// VerifySignupRequest 注册验证码校验
type VerifySignupRequest struct {
	Email    string `json:"email" binding:"required,email" example:"asha@example.com"`
	EmailOTP string `json:"emailOtp" binding:"required,len=6,numeric" example:"123456"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"asha@example.com"`
	Password string `json:"password" binding:"required" example:"correct-horse"`
}

// ForgotPasswordRequest 忘记密码
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"asha@example.com"`
}

// ResetPasswordRequest 重置密码
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email" example:"asha@example.com"`
	OTP         string `json:"otp" binding:"required,len=6,numeric" example:"123456"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangePasswordRequest 修改密码
type ChangePasswordRequest struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"newpassword" binding:"required,min=8"`
}
