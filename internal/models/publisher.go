package models

import (
	"fmt"
	"strings"
)

// Publisher represents a game publisher. Name is the identity.
type Publisher struct {
	Name     string `gorm:"primaryKey;size:255"`
	NameFold string `gorm:"size:255;index"`
}

// NewPublisher creates a publisher, trimming surrounding whitespace from the name.
func NewPublisher(name string) (*Publisher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: publisher name must not be empty", ErrInvalid)
	}
	return &Publisher{Name: name}, nil
}

func (p *Publisher) String() string {
	return fmt.Sprintf("<Publisher %s>", p.Name)
}

// ComparePublishers orders publishers by name.
func ComparePublishers(a, b *Publisher) int {
	return strings.Compare(a.Name, b.Name)
}
