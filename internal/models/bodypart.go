package models

import "strings"

// BodyPart is a content filter value with a fixed display string.
type BodyPart string

const (
	Abs             BodyPart = "Abs"
	Biceps          BodyPart = "Biceps"
	Calves          BodyPart = "Calves"
	Chest           BodyPart = "Chest"
	ExternalOblique BodyPart = "External Oblique"
	Forearms        BodyPart = "Forearms"
	Glutes          BodyPart = "Glutes"
	Neck            BodyPart = "Neck"
	Quads           BodyPart = "Quads"
	Shoulders       BodyPart = "Shoulders"
	Triceps         BodyPart = "Triceps"
	Hamstrings      BodyPart = "Hamstrings"
	Lats            BodyPart = "Lats"
	LowerBack       BodyPart = "Lower Back"
	Traps           BodyPart = "Traps"
	FullBody        BodyPart = "Full Body"
)

// BodyParts lists every known value in display order.
var BodyParts = []BodyPart{
	Abs, Biceps, Calves, Chest, ExternalOblique, Forearms, Glutes, Neck,
	Quads, Shoulders, Triceps, Hamstrings, Lats, LowerBack, Traps, FullBody,
}

// ParseBodyPart matches s case-insensitively against the display strings.
func ParseBodyPart(s string) (BodyPart, bool) {
	s = strings.TrimSpace(s)
	for _, bp := range BodyParts {
		if strings.EqualFold(string(bp), s) {
			return bp, true
		}
	}
	return "", false
}

// JoinBodyParts renders parts as the comma-separated body_parts parameter.
func JoinBodyParts(parts []BodyPart) string {
	ss := make([]string, len(parts))
	for i, p := range parts {
		ss[i] = string(p)
	}
	return strings.Join(ss, ",")
}
