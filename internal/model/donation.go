package model

// DonationRequest 是捐赠表单提交的数据
type DonationRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=card upi netbanking"`
	UserID        int     `json:"userId" validate:"required,gt=0"`
}

// DonationReceipt 是后端返回的捐赠回执
type DonationReceipt struct {
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount,omitempty"`
	Message       string  `json:"message,omitempty"`
}

// CollegeRegistration 是院校注册表单提交的数据
type CollegeRegistration struct {
	CollegeName   string  `json:"collegeName" validate:"required"`
	Address       string  `json:"address" validate:"required"`
	ContactPerson string  `json:"contactPerson" validate:"required"`
	ContactEmail  string  `json:"contactEmail" validate:"required,email"`
	ContactPhone  string  `json:"contactPhone" validate:"required"`
	AdminUser     NewUser `json:"adminUser" validate:"required"`
}

// CollegeConfirmation 是院校注册成功后的确认信息
type CollegeConfirmation struct {
	CollegeID int    `json:"collegeId"`
	Message   string `json:"message"`
}
