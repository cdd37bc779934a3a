package content

import "errors"

var (
	ErrUnknownKey          = errors.New("unknown content key")
	ErrUnknownField        = errors.New("unknown testimonial field")
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrInvalidTestimonials = errors.New("invalid testimonials list")
)
