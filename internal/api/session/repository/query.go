package sessionRepository

const (
	queryCreateConsent = `
		INSERT INTO consent_records (
			id, full_name, email, document_id, signature_url,
			consent_text, accepted_terms_at, signed_at
		) VALUES (
			:id, :full_name, :email, :document_id, :signature_url,
			:consent_text, :accepted_terms_at, :signed_at
		)
	`

	queryGetLatestConsent = `
		SELECT
			id, full_name, email, document_id, signature_url,
			consent_text, accepted_terms_at, signed_at
		FROM consent_records
		ORDER BY signed_at DESC
		LIMIT 1
	`

	queryDeleteGenerationResults = `
		DELETE FROM generation_results
	`

	queryDeleteTryOns = `
		DELETE FROM tryons
	`
)
