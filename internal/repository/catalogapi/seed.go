package catalogapi

import "github.com/DRSN-tech/storefront-gateway/internal/domain"

// Встроенный резервный каталог. Отдаётся вместо данных бэкенда при его
// полной недоступности, чтобы витрина оставалась рабочей.
var seedProducts = []domain.Product{
	{
		ID:          "seed-1",
		Name:        "Wireless Headphones",
		Description: "Over-ear wireless headphones with active noise cancelling",
		Price:       799900,
		OldPrice:    999900,
		Categories:  []string{"electronics", "audio"},
		Image:       "/img/seed/headphones.jpg",
		InStock:     true,
		Quantity:    12,
		Trending:    true,
		BestSeller:  true,
		Rating:      4.7,
		ReviewCount: 214,
	},
	{
		ID:          "seed-2",
		Name:        "Wireless Mouse",
		Description: "Compact 2.4 GHz wireless mouse",
		Price:       149900,
		Categories:  []string{"electronics", "accessories"},
		Image:       "/img/seed/mouse.jpg",
		InStock:     true,
		Quantity:    40,
		Rating:      4.4,
		ReviewCount: 98,
	},
	{
		ID:          "seed-3",
		Name:        "Mechanical Keyboard",
		Description: "Tenkeyless mechanical keyboard, hot-swappable switches",
		Price:       549900,
		Categories:  []string{"electronics", "accessories"},
		Image:       "/img/seed/keyboard.jpg",
		Gallery:     []string{"/img/seed/keyboard-side.jpg"},
		InStock:     true,
		Quantity:    7,
		NewArrival:  true,
		Rating:      4.8,
		ReviewCount: 56,
	},
	{
		ID:          "seed-4",
		Name:        "Leather Backpack",
		Description: "Full-grain leather backpack with laptop sleeve",
		Price:       1199900,
		Categories:  []string{"bags"},
		Image:       "/img/seed/backpack.jpg",
		InStock:     true,
		Quantity:    5,
		Rating:      4.6,
		ReviewCount: 41,
	},
	{
		ID:          "seed-5",
		Name:        "Smart Lamp",
		Description: "Dimmable smart lamp with app control",
		Price:       299900,
		OldPrice:    349900,
		Categories:  []string{"home", "electronics"},
		Image:       "/img/seed/lamp.jpg",
		InStock:     false,
		NewArrival:  true,
		Rating:      4.2,
		ReviewCount: 19,
	},
	{
		ID:          "seed-6",
		Name:        "Desk Mat",
		Description: "Extended felt desk mat",
		Price:       99900,
		Categories:  []string{"office"},
		Image:       "/img/seed/deskmat.jpg",
		InStock:     true,
		Quantity:    63,
		Rating:      4.1,
		ReviewCount: 12,
	},
}

// seedCategories — категории резервного каталога.
var seedCategories = []domain.Category{
	{ID: "electronics", Name: "Electronics"},
	{ID: "audio", Name: "Audio"},
	{ID: "accessories", Name: "Accessories"},
	{ID: "bags", Name: "Bags"},
	{ID: "home", Name: "Home"},
	{ID: "office", Name: "Office"},
}
