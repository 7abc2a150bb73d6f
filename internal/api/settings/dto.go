package settings

type APIConfig struct {
	FalKey      string `json:"fal_key"`
	OpenAIKey   string `json:"openai_key"`
	ElevenKey   string `json:"eleven_key"`
	VideoEngine string `json:"video_engine,omitempty"`
}

type APIConfigResponse struct {
	FalKeySet    bool   `json:"fal_key_set"`
	OpenAIKeySet bool   `json:"openai_key_set"`
	ElevenKeySet bool   `json:"eleven_key_set"`
	VideoEngine  string `json:"video_engine,omitempty"`
}

// Permissions mirrors the device permission toggles the client persists
// between launches.
type Permissions struct {
	Camera       bool `json:"camera"`
	Microphone   bool `json:"microphone"`
	Storage      bool `json:"storage"`
	Overlay      bool `json:"overlay"`
	IgnoreDoze   bool `json:"ignore_doze"`
	Notification bool `json:"notification"`
}

type GDPRConfig struct {
	Enabled           bool `json:"enabled"`
	RetentionMinutes  int  `json:"retention_minutes"`
	RequireSignature  bool `json:"require_signature"`
	SendReceiptEmails bool `json:"send_receipt_emails"`
}

type ConsentTextRequest struct {
	Text string `json:"text" validate:"required,min=20"`
}

type ConsentTextResponse struct {
	Text string `json:"text"`
}

type WelcomeFlagResponse struct {
	Seen bool `json:"seen"`
}
