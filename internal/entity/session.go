package entity

type SessionState uint8

const (
	StateBooting SessionState = iota
	StateAwaitingConsent
	StateAuthenticating
	StateActive
	StateIdle
	StateWipePending
)

var SessionStateMap = map[SessionState]string{
	StateBooting:         "BOOTING",
	StateAwaitingConsent: "AWAITING_CONSENT",
	StateAuthenticating:  "AUTHENTICATING",
	StateActive:          "ACTIVE",
	StateIdle:            "IDLE",
	StateWipePending:     "WIPE_PENDING",
}

func (s SessionState) String() string {
	return SessionStateMap[s]
}

func (s SessionState) Value() uint8 {
	return uint8(s)
}

// SessionFlags are the persisted gate flags that decide the initial state on
// boot. All three are deleted by the inactivity wipe.
type SessionFlags struct {
	TermsAccepted bool `json:"terms_accepted"`
	GDPRAccepted  bool `json:"gdpr_accepted"`
	Authenticated bool `json:"authenticated"`
}

type MirrorSession struct {
	ID     string
	Device string
}
