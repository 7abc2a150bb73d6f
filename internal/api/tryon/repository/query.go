package tryonRepository

const (
	queryCreateTryOn = `
		INSERT INTO tryons (
			id, person_image_url, garment_id, garment_image_url, category,
			composite_url, favorite, created_at, updated_at
		) VALUES (
			:id, :person_image_url, :garment_id, :garment_image_url, :category,
			:composite_url, :favorite, :created_at, :updated_at
		)
	`

	queryGetTryOnByID = `
		SELECT
			id, person_image_url, garment_id, garment_image_url, category,
			composite_url, favorite, created_at, updated_at
		FROM tryons
		WHERE id = :id
	`

	queryGetAllTryOns = `
		SELECT
			id, person_image_url, garment_id, garment_image_url, category,
			composite_url, favorite, created_at, updated_at
		FROM tryons
		ORDER BY created_at DESC
	`

	queryGetFavoriteTryOns = `
		SELECT
			id, person_image_url, garment_id, garment_image_url, category,
			composite_url, favorite, created_at, updated_at
		FROM tryons
		WHERE favorite = true
		ORDER BY created_at DESC
	`

	querySetFavorite = `
		UPDATE tryons
		SET favorite = :favorite, updated_at = :updated_at
		WHERE id = :id
	`

	queryCreateGeneration = `
		INSERT INTO generation_results (
			id, tryon_id, source_image_ref, backend, video_url,
			status, error_detail, created_at, updated_at
		) VALUES (
			:id, :tryon_id, :source_image_ref, :backend, :video_url,
			:status, :error_detail, :created_at, :updated_at
		)
	`

	queryUpdateGeneration = `
		UPDATE generation_results
		SET
			video_url = :video_url,
			status = :status,
			error_detail = :error_detail,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryGetGenerationByID = `
		SELECT
			id, tryon_id, source_image_ref, backend, video_url,
			status, error_detail, created_at, updated_at
		FROM generation_results
		WHERE id = :id
	`

	queryGetGenerationsByTryOnID = `
		SELECT
			id, tryon_id, source_image_ref, backend, video_url,
			status, error_detail, created_at, updated_at
		FROM generation_results
		WHERE tryon_id = :tryon_id
		ORDER BY created_at DESC
	`
)
