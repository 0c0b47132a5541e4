package domain

import "strings"

// Category описывает категорию товара и число товаров каталога в ней.
type Category struct {
	ID    string
	Name  string
	Count int
}

func NewCategory(id, name string) *Category {
	if name == "" {
		name = CategoryNameFromSlug(id)
	}

	return &Category{
		ID:   id,
		Name: name,
	}
}

// CategoryNameFromSlug выводит отображаемое имя из идентификатора категории:
// "home-audio" -> "Home Audio".
func CategoryNameFromSlug(slug string) string {
	parts := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})

	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}

	return strings.Join(parts, " ")
}
