package content

import (
	"fmt"
	"strings"
)

// Key names one piece of editable page copy.
type Key string

const (
	HeroTitle       Key = "hero_title"
	HeroSubtitle    Key = "hero_subtitle"
	HeroImage       Key = "hero_image"
	AboutTitle      Key = "about_title"
	AboutText       Key = "about_text"
	AboutFooter     Key = "about_footer"
	MarqueeText     Key = "marquee_text"
	WorkDesc        Key = "work_desc"
	ProcessTitle    Key = "process_title"
	ProcessSubtitle Key = "process_subtitle"
	FooterCTA       Key = "footer_cta"
	FooterBigText   Key = "footer_big_text"
	Testimonials    Key = "testimonials_json"
)

var defaults = map[Key]string{
	HeroTitle:       "Freelance",
	HeroSubtitle:    "Designer & Developer",
	HeroImage:       "",
	AboutTitle:      "/ABOUT",
	AboutText:       "Loading...",
	AboutFooter:     "Loading...",
	MarqueeText:     "DESIGN ✸",
	WorkDesc:        "Loading...",
	ProcessTitle:    "Visual Archive",
	ProcessSubtitle: "Loading...",
	FooterCTA:       "Let's Work Together",
	FooterBigText:   "PORTFOLIO",
	Testimonials:    "[]",
}

// Keys lists every known key in page order.
func Keys() []Key {
	return []Key{
		HeroTitle, HeroSubtitle, HeroImage,
		AboutTitle, AboutText, AboutFooter,
		MarqueeText, WorkDesc,
		ProcessTitle, ProcessSubtitle,
		FooterCTA, FooterBigText,
		Testimonials,
	}
}

// ParseKey accepts a known key. "testimonials" is accepted for the list.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if s == "testimonials" {
		return Testimonials, nil
	}
	k := Key(s)
	if _, ok := defaults[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
	}
	return k, nil
}

// Default returns the value shown before anything is loaded.
func (k Key) Default() string {
	return defaults[k]
}
