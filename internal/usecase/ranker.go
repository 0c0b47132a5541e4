package usecase

import (
	"sort"
	"strings"

	"github.com/DRSN-tech/storefront-gateway/internal/domain"
)

// Веса совпадений по полям товара.
const (
	weightName        = 10
	weightNameExact   = 15 // добавка за точное совпадение или префикс имени
	weightDescription = 5
	weightCategory    = 7
)

type scoredProduct struct {
	product domain.Product
	score   int
	pos     int // исходная позиция в каталоге, для стабильности
}

// rankProducts возвращает товары, упорядоченные по убыванию релевантности.
// Запрос разбивается на термы; при нескольких термах товар попадает в выдачу,
// только если каждый терм совпал хотя бы по одному полю (конъюнкция).
// Равные очки сохраняют исходный порядок каталога.
// categoryNames — отображение id категории в её имя в нижнем регистре.
func rankProducts(products []domain.Product, categoryNames map[string]string, rawQuery string) []domain.Product {
	terms := strings.Fields(strings.ToLower(strings.TrimSpace(rawQuery)))
	if len(terms) == 0 {
		return nil
	}

	scored := make([]scoredProduct, 0, len(products))
	for i, p := range products {
		score, ok := scoreProduct(&p, categoryNames, terms)
		if !ok || score == 0 {
			continue
		}

		scored = append(scored, scoredProduct{product: p, score: score, pos: i})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].pos < scored[j].pos
	})

	result := make([]domain.Product, len(scored))
	for i, s := range scored {
		result[i] = s.product
	}

	return result
}

// scoreProduct суммирует очки по всем термам.
// Второй результат false, если хотя бы один терм не совпал ни по одному полю.
func scoreProduct(p *domain.Product, categoryNames map[string]string, terms []string) (int, bool) {
	name := strings.ToLower(p.Name)
	description := strings.ToLower(p.Description)

	total := 0
	for _, term := range terms {
		score := scoreTerm(p, name, description, categoryNames, term)
		if score == 0 {
			return 0, false
		}
		total += score
	}

	return total, true
}

func scoreTerm(p *domain.Product, name, description string, categoryNames map[string]string, term string) int {
	score := 0

	if strings.Contains(name, term) {
		score += weightName
		if name == term || strings.HasPrefix(name, term+" ") {
			score += weightNameExact
		}
	}

	if strings.Contains(description, term) {
		score += weightDescription
	}

	for _, catID := range p.Categories {
		catName, ok := categoryNames[catID]
		if !ok {
			catName = strings.ToLower(domain.CategoryNameFromSlug(catID))
		}
		if strings.Contains(catName, term) {
			score += weightCategory
			break
		}
	}

	return score
}

// categoryNameIndex строит индекс имён категорий для ранжирования.
func categoryNameIndex(categories []domain.Category) map[string]string {
	index := make(map[string]string, len(categories))
	for _, c := range categories {
		index[c.ID] = strings.ToLower(c.Name)
	}

	return index
}
