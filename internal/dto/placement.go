package dto

type PlacementResult struct {
	ItemID          uint   `json:"item_id"`
	Success         bool   `json:"success"`
	Simulated       bool   `json:"simulated"`
	Operation       string `json:"operation,omitempty"`
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path"`
	DestinationName string `json:"destination_name"`
	Error           string `json:"error,omitempty"`
}

// ItemUpdate is a partial correction of an item's derived fields. Nil
// pointers and nil slices leave the current value untouched.
type ItemUpdate struct {
	Category    *string  `json:"category,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
	Description *string  `json:"description,omitempty"`
}
