package skills

import "strings"

// Badge is the software logo shown on a skill card.
type Badge string

const (
	BadgeAfterEffects Badge = "ae"
	BadgePhotoshop    Badge = "ps"
	BadgeIllustrator  Badge = "ai"
	BadgePremiere     Badge = "pr"
	BadgeXD           Badge = "xd"
	BadgeGeneric      Badge = "generic"
)

// BadgeStyle is what the page needs to draw a badge.
type BadgeStyle struct {
	Badge      Badge  `json:"badge"`
	Label      string `json:"label"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

var badgeStyles = map[Badge]BadgeStyle{
	BadgeAfterEffects: {Badge: BadgeAfterEffects, Label: "Ae", Background: "#00005b", Foreground: "#d29bfd"},
	BadgePhotoshop:    {Badge: BadgePhotoshop, Label: "Ps", Background: "#001e36", Foreground: "#31a8ff"},
	BadgeIllustrator:  {Badge: BadgeIllustrator, Label: "Ai", Background: "#331c00", Foreground: "#ff9a00"},
	BadgePremiere:     {Badge: BadgePremiere, Label: "Pr", Background: "#00005b", Foreground: "#d29bfd"},
	BadgeXD:           {Badge: BadgeXD, Label: "Xd", Background: "#470137", Foreground: "#ff61f6"},
	BadgeGeneric:      {Badge: BadgeGeneric, Label: "", Background: "#1f2937", Foreground: "#ffffff"},
}

// Badges lists every badge, generic last.
func Badges() []Badge {
	return []Badge{BadgeAfterEffects, BadgePhotoshop, BadgeIllustrator, BadgePremiere, BadgeXD, BadgeGeneric}
}

// ParseBadge maps a stored key to its badge. Unknown keys are generic.
func ParseBadge(s string) Badge {
	b := Badge(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := badgeStyles[b]; ok {
		return b
	}
	return BadgeGeneric
}

// Style returns the drawing data for b, falling back to generic.
func (b Badge) Style() BadgeStyle {
	if style, ok := badgeStyles[b]; ok {
		return style
	}
	return badgeStyles[BadgeGeneric]
}
