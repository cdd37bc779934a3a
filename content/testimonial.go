package content

import (
	"encoding/json"
	"fmt"
)

// Testimonial is one client quote.
type Testimonial struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

const (
	newTestimonialText   = "Click to edit this testimonial..."
	newTestimonialAuthor = "New client"
	newTestimonialRole   = "Role"
)

func (t *Testimonial) set(field, value string) error {
	switch field {
	case "text":
		t.Text = value
	case "author":
		t.Author = value
	case "role":
		t.Role = value
	case "avatar":
		t.Avatar = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func parseTestimonials(raw string) ([]Testimonial, error) {
	if raw == "" {
		return []Testimonial{}, nil
	}
	var list []Testimonial
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTestimonials, err)
	}
	if list == nil {
		list = []Testimonial{}
	}
	return list, nil
}

func encodeTestimonials(list []Testimonial) string {
	if len(list) == 0 {
		return "[]"
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}
