package entity

// ModelTier is a coarse ranking hint derived from a model's name.
type ModelTier int

const (
	ModelTierUnknown ModelTier = iota
	ModelTierGeneral
	ModelTierLightweight
)

func (t ModelTier) String() string {
	switch t {
	case ModelTierLightweight:
		return "lightweight"
	case ModelTierGeneral:
		return "general"
	default:
		return "unknown"
	}
}

// ModelDescriptor identifies a callable text generation endpoint.
type ModelDescriptor struct {
	ID                     string    `json:"id"`
	DisplayName            string    `json:"display_name,omitempty"`
	SupportsTextGeneration bool      `json:"supports_text_generation"`
	Tier                   ModelTier `json:"tier"`
}
