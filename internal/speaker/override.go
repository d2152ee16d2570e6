package speaker

// Override rewrites one mapped label to another after the map lookup.
type Override struct {
	From string
	To   string
}

// YoungSuowong fixes the one known mis-mapped label in the character sheet.
var YoungSuowong = Override{From: "Suowong", To: "SuowongYoung"}

// Apply returns To when label equals From, otherwise label unchanged.
func (o Override) Apply(label string) string {
	if label == o.From {
		return o.To
	}
	return label
}
