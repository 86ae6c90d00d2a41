package llm

import "strings"

// BuildExtractionPrompt composes the fixed instruction sent with every
// image: enumerate visible label/value pairs, invent descriptive labels
// where none are printed, mark illegible values, JSON only.
func BuildExtractionPrompt() string {
	parts := []string{
		"You are an AI expert at reading and extracting information from handwritten forms and documents.",
		"Carefully analyze this handwritten form image. Identify all visible fields, labels, and their corresponding handwritten values.",
		"Look for any printed or handwritten labels (like \"Name:\", \"Date:\", \"Address:\") and extract the handwritten value next to each label.",
		"If you see fields without clear labels, create appropriate descriptive labels based on the content.",
		"Include ALL text you can read from the image. If text is unclear or illegible, mark the value as \"unreadable\".",
		`Respond with STRICT JSON ONLY, shaped as {"fields": [{"label": "descriptive field name based on what you see", "value": "the actual handwritten text you read"}]}.`,
		"Return ONLY valid JSON, no explanations or additional text.",
		"Create labels dynamically based on what's actually in the image; do not assume or invent fields that aren't visible.",
		"Extract exactly what you see and maintain original spelling and formatting. Be thorough.",
	}
	return strings.Join(parts, " ")
}
