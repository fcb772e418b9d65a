package domain

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxCategoryNameLen        = 50
	MaxCategoryDescriptionLen = 250
)

// Category is an event category that slots are tagged with.
// swagger:model Category
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewCategory returns a new Category. ID is set by the repository on create.
func NewCategory(name, description string) *Category {
	return &Category{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
}

// Validate checks the stored field limits.
func (c *Category) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(c.Name) > MaxCategoryNameLen {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, MaxCategoryNameLen)
	}
	if utf8.RuneCountInString(c.Description) > MaxCategoryDescriptionLen {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, MaxCategoryDescriptionLen)
	}
	return nil
}

// CategoryRepository defines storage for event categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id int64) error
}

// CategoryService is the category registry.
type CategoryService interface {
	List(ctx context.Context) ([]*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id int64) error
}
