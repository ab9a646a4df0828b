package model

import (
	"regexp"
	"time"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidColor reports whether c is a #RRGGBB hex color.
func ValidColor(c string) bool {
	return colorPattern.MatchString(c)
}

// Category is a user-defined label managed through the REST layer.
type Category struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type NewCategory struct {
	Name        string
	Color       string
	Description string
}

type CategoryPatch struct {
	Name        *string
	Color       *string
	Description *string
}

func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	return c
}
