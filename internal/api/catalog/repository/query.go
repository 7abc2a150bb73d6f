package catalogRepository

const (
	queryCreateGarment = `
		INSERT INTO garments (
			id, name, brand, category, image_url, description,
			is_active, created_at, updated_at
		) VALUES (
			:id, :name, :brand, :category, :image_url, :description,
			:is_active, :created_at, :updated_at
		)
	`

	queryGetGarmentByID = `
		SELECT
			id, name, brand, category, image_url, description,
			is_active, created_at, updated_at
		FROM garments
		WHERE id = :id AND is_active = true
	`

	queryGetAllGarments = `
		SELECT
			id, name, brand, category, image_url, description,
			is_active, created_at, updated_at
		FROM garments
		WHERE is_active = true
		ORDER BY category, name
	`

	queryGetGarmentsByCategory = `
		SELECT
			id, name, brand, category, image_url, description,
			is_active, created_at, updated_at
		FROM garments
		WHERE category = :category AND is_active = true
		ORDER BY name
	`

	queryDeactivateGarment = `
		UPDATE garments
		SET is_active = false, updated_at = :updated_at
		WHERE id = :id
	`
)
