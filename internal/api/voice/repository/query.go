package voiceRepository

const (
	queryCreateCommand = `
		INSERT INTO voice_commands (
			id,
			transcript,
			language,
			intent,
			response,
			confidence,
			success,
			metadata,
			created_at,
			updated_at
		) VALUES (
			:id,
			:transcript,
			:language,
			:intent,
			:response,
			:confidence,
			:success,
			:metadata,
			:created_at,
			:updated_at
		)
	`

	queryGetCommands = `
		SELECT
			id,
			transcript,
			language,
			intent,
			response,
			confidence,
			success,
			metadata,
			created_at,
			updated_at
		FROM voice_commands
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountCommands = `
		SELECT COUNT(*) FROM voice_commands
	`

	queryIntentStats = `
		SELECT
			intent,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE success) AS succeeded
		FROM voice_commands
		GROUP BY intent
		ORDER BY total DESC
	`

	queryLanguageStats = `
		SELECT
			language,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE success) AS succeeded
		FROM voice_commands
		GROUP BY language
		ORDER BY total DESC
	`
)
