package adapter

// Credential is the secret an adapter needs before it may touch the network.
// It is read once at startup and never mutated.
type Credential struct {
	Value string
	// Message is returned verbatim when the credential is missing
	Message string
}

// NewCredential creates a credential and its remediation message
func NewCredential(value, message string) Credential {
	return Credential{Value: value, Message: message}
}

// Present reports whether the secret is set
func (c Credential) Present() bool {
	return c.Value != ""
}

// Ensure fails fast with a ConfigurationError when the secret is missing
func (c Credential) Ensure() error {
	if c.Present() {
		return nil
	}
	return &ConfigurationError{Message: c.Message}
}
