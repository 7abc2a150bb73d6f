package voiceRepository

const (
	queryCreateInvocation = `
		INSERT INTO voice_invocations (
			id, utterance, command_id, action_type, target, matched, created_at
		) VALUES (
			:id, :utterance, :command_id, :action_type, :target, :matched, :created_at
		)
	`

	queryGetRecentInvocations = `
		SELECT
			id, utterance, command_id, action_type, target, matched, created_at
		FROM voice_invocations
		ORDER BY created_at DESC
		LIMIT :limit
	`
)
