package models

// InteractionKind is the kind of user engagement with a place.
type InteractionKind string

// Interaction kinds
const (
	InteractionView InteractionKind = "view"
	InteractionChat InteractionKind = "chat"
	InteractionSave InteractionKind = "save"
)

// Score weights applied by the aggregator per interaction kind.
var interactionWeights = map[InteractionKind]int64{
	InteractionView: 1,
	InteractionChat: 3,
	InteractionSave: 5,
}

// Valid reports whether k is one of the known interaction kinds.
func (k InteractionKind) Valid() bool {
	_, ok := interactionWeights[k]
	return ok
}

// Weight returns the score contribution of one interaction of this kind.
func (k InteractionKind) Weight() int64 {
	return interactionWeights[k]
}

// TabScoped reports whether receipts for this kind live only as long as the
// visitor's session. Chat and save receipts are persistent.
func (k InteractionKind) TabScoped() bool {
	return k == InteractionView
}

// Receipt marks that an interaction of Kind already counted for PlaceKey on Date.
type Receipt struct {
	PlaceKey PlaceKey        `json:"place_key"`
	Kind     InteractionKind `json:"kind"`
	Date     string          `json:"date"` // 2006-01-02
}
