package event

// ConfigChangedPayload carries a change notification
// Group scopes the key; consumers ignore groups they do not own
type ConfigChangedPayload struct {
	Group string
	Key   string
}
