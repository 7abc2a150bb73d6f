package session

import "mime/multipart"

type BootstrapResponse struct {
	State         string `json:"state"`
	TermsAccepted bool   `json:"terms_accepted"`
	GDPRAccepted  bool   `json:"gdpr_accepted"`
	Authenticated bool   `json:"authenticated"`
}

type ConsentRequest struct {
	FullName   string `json:"full_name" validate:"required,min=2,max=120"`
	Email      string `json:"email" validate:"required,email"`
	DocumentID string `json:"document_id" validate:"required,min=4,max=40"`

	Signature *multipart.FileHeader `json:"-"`
}

type ConsentResponse struct {
	ID           string `json:"id"`
	SignatureURL string `json:"signature_url"`
	SignedAt     string `json:"signed_at"`
	State        string `json:"state"`
}

type LoginRequest struct {
	AccessCode string `json:"access_code" validate:"required,min=4"`
	Device     string `json:"device" validate:"max=80"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	State       string `json:"state"`
}

type StateResponse struct {
	State         string `json:"state"`
	TermsAccepted bool   `json:"terms_accepted"`
	GDPRAccepted  bool   `json:"gdpr_accepted"`
	Authenticated bool   `json:"authenticated"`
}
