package models

import "time"

// Contact is an inquiry submitted through the public contact form
type Contact struct {
	ID            string     `json:"id"`
	CompanyName   string     `json:"companyName"`
	ContactName   string     `json:"contactName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Inquiry       string     `json:"inquiry"`
	PrivacyPolicy bool       `json:"privacyPolicy"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeletedAt     *time.Time `json:"-"`
}

// ContactCreateInput is the payload accepted by POST /api/contacts.
// PrivacyPolicy must be present and literally true.
type ContactCreateInput struct {
	CompanyName   string `json:"companyName" validate:"required,max=100"`
	ContactName   string `json:"contactName" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,max=255,email"`
	Phone         string `json:"phone" validate:"required,phone"`
	Inquiry       string `json:"inquiry" validate:"required,max=2000"`
	PrivacyPolicy *bool  `json:"privacyPolicy" validate:"required,mustbetrue"`
}

// ContactUpdateInput lets admins correct a stored inquiry
type ContactUpdateInput struct {
	CompanyName *string `json:"companyName" validate:"omitempty,min=1,max=100"`
	ContactName *string `json:"contactName" validate:"omitempty,min=1,max=100"`
	Email       *string `json:"email" validate:"omitempty,max=255,email"`
	Phone       *string `json:"phone" validate:"omitempty,phone"`
	Inquiry     *string `json:"inquiry" validate:"omitempty,min=1,max=2000"`
}
