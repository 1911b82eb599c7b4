package models

// Visitor identifies who is interacting. TabID follows the HTTP session and
// scopes view receipts; DeviceID is long-lived (account subject when signed in)
// and scopes chat/save receipts.
type Visitor struct {
	TabID    string
	DeviceID string
}

// Owner returns the receipt owner for the given interaction kind.
func (v Visitor) Owner(kind InteractionKind) string {
	if kind.TabScoped() {
		return v.TabID
	}
	return v.DeviceID
}
