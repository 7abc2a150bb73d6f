package entity

import "time"

// ConsentRecord is the signed GDPR consent captured before any data
// processing. Kept after wipes: it is the legal record of the consent itself,
// not profile data.
type ConsentRecord struct {
	ID              string    `db:"id"`
	FullName        string    `db:"full_name"`
	Email           string    `db:"email"`
	DocumentID      string    `db:"document_id"`
	SignatureURL    string    `db:"signature_url"`
	ConsentText     string    `db:"consent_text"`
	AcceptedTermsAt time.Time `db:"accepted_terms_at"`
	SignedAt        time.Time `db:"signed_at"`
}
