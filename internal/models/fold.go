package models

import (
	"strings"

	"gorm.io/gorm"
)

// Fold returns the case-folded form used for every case-insensitive
// comparison: username identity and catalog search.
func Fold(s string) string {
	return strings.ToLower(s)
}

// The hooks below keep the *Fold columns in step with the names they fold,
// so databases compare folded text without relying on their own LOWER().

func (g *Game) BeforeSave(*gorm.DB) error {
	g.TitleFold = Fold(g.Title)
	return nil
}

func (g *Genre) BeforeSave(*gorm.DB) error {
	g.NameFold = Fold(g.Name)
	return nil
}

func (p *Publisher) BeforeSave(*gorm.DB) error {
	p.NameFold = Fold(p.Name)
	return nil
}

func (u *User) BeforeSave(*gorm.DB) error {
	u.UsernameFold = Fold(u.Username)
	return nil
}
