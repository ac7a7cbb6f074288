package devenv

// LiveTestConfig is read from <dev_state>/azleg.json5 by tests that talk to the
// real legislative service. Tests skip themselves when it is missing.
type LiveTestConfig struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	SessionID int    `json:"session_id"`
	Bill      string `json:"bill"`
}
