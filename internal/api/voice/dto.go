package voice

import "time"

type RegisterCommandRequest struct {
	ID          string   `json:"id" validate:"required,min=1,max=80"`
	Screen      string   `json:"screen" validate:"required,min=1,max=80"`
	Patterns    []string `json:"patterns" validate:"required,min=1,dive,min=1,max=120"`
	Description string   `json:"description" validate:"max=200"`
	ActionType  string   `json:"action_type" validate:"required,oneof=navigate scroll trigger"`
	Target      string   `json:"target" validate:"max=200"`
}

type CommandResponse struct {
	ID          string   `json:"id"`
	Screen      string   `json:"screen"`
	Patterns    []string `json:"patterns"`
	Description string   `json:"description"`
	ActionType  string   `json:"action_type"`
	Target      string   `json:"target,omitempty"`
}

type CommandListResponse struct {
	Commands []CommandResponse `json:"commands"`
	Total    int               `json:"total"`
}

type UtteranceRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

type SuggestionItem struct {
	CommandID   string  `json:"command_id"`
	Phrase      string  `json:"phrase"`
	Description string  `json:"description,omitempty"`
	Score       float64 `json:"score"`
}

type VoiceCommandResponse struct {
	Matched     bool             `json:"matched"`
	Transcript  string           `json:"transcript,omitempty"`
	CommandID   string           `json:"command_id,omitempty"`
	ActionType  string           `json:"action_type,omitempty"`
	Target      string           `json:"target,omitempty"`
	Reply       string           `json:"reply,omitempty"`
	AudioBase64 string           `json:"audio_base64,omitempty"`
	Suggestions []SuggestionItem `json:"suggestions,omitempty"`
}

type NLPTestRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

type NLPTestResponse struct {
	Input       string           `json:"input"`
	CleanedText string           `json:"cleaned_text"`
	Tokens      []string         `json:"tokens"`
	Suggestions []SuggestionItem `json:"suggestions"`
}

type InvocationHistory struct {
	ID         string    `json:"id"`
	Utterance  string    `json:"utterance"`
	CommandID  string    `json:"command_id"`
	ActionType string    `json:"action_type"`
	Target     string    `json:"target"`
	Matched    bool      `json:"matched"`
	CreatedAt  time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Invocations []InvocationHistory `json:"invocations"`
	Total       int                 `json:"total"`
}

// LastExecutedResponse feeds the UI banner that echoes the most recent
// recognized command; Description is empty when nothing has run yet.
type LastExecutedResponse struct {
	Description string `json:"description"`
}
