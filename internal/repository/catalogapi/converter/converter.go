// Package converter нормализует разнородные ответы каталогового API
// в канонические доменные записи.
package converter

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/DRSN-tech/storefront-gateway/internal/domain"
	"github.com/DRSN-tech/storefront-gateway/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

const (
	// PlaceholderImage подставляется вместо отсутствующей или
	// некорректной ссылки на изображение.
	PlaceholderImage = "/img/placeholder.png"

	// maxInlineImageLen — предел длины inline-изображения (data-URI).
	// Более длинные считаются некорректными и заменяются заглушкой,
	// чтобы раздутые payload не протекали в кэш и рендер.
	maxInlineImageLen = 8 << 10

	placeholderName = "Untitled product"

	imageTypePrimary = "primary"
)

// DecodeList извлекает массив данных из тела ответа.
// Принимает конверт {success, data: [...]} и голый массив legacy-бэкенда;
// форма определяется структурно, по первому значащему символу.
func DecodeList(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrUnexpectedPayload)
	}

	if trimmed[0] == '[' {
		return json.RawMessage(trimmed), nil
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if env.Data == nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrUnexpectedPayload)
	}

	return env.Data, nil
}

// DecodeItem извлекает одиночный объект из тела ответа: либо из конверта
// {success, data: {...}}, либо из голого объекта legacy-бэкенда.
func DecodeItem(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrUnexpectedPayload)
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if env.Data != nil {
		return env.Data, nil
	}

	// Конверта нет — значит, объект и есть данные.
	return json.RawMessage(trimmed), nil
}

// ToProducts разбирает и нормализует список товаров.
// Запись без идентификатора непригодна и исключается; любое другое
// отсутствующее поле получает значение по умолчанию.
func ToProducts(data json.RawMessage) ([]domain.Product, []string, error) {
	var payloads []ProductPayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, nil, e.Wrap(whereami.WhereAmI(), err)
	}

	products := make([]domain.Product, 0, len(payloads))
	var skipped []string
	for i, payload := range payloads {
		product, err := ToProduct(&payload)
		if err != nil {
			skipped = append(skipped, "index "+strconv.Itoa(i))
			continue
		}
		products = append(products, *product)
	}

	return products, skipped, nil
}

// ToProduct нормализует один товар.
func ToProduct(p *ProductPayload) (*domain.Product, error) {
	if p.ID == "" {
		return nil, e.ErrProductIDMissing
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = placeholderName
	}

	primary := resolvePrimaryImage(p)

	quantity := 0
	if p.Quantity != nil && *p.Quantity > 0 {
		quantity = *p.Quantity
	}

	// Отсутствие in_stock трактуется разрешительно: товар доступен,
	// если явно не сказано обратное.
	inStock := true
	if p.InStock != nil {
		inStock = *p.InStock
	}

	rating := p.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}

	reviewCount := p.ReviewCount
	if reviewCount < 0 {
		reviewCount = 0
	}

	return &domain.Product{
		ID:          string(p.ID),
		Name:        name,
		Description: p.Description,
		Price:       priceToCents(p.Price),
		OldPrice:    priceToCents(p.OldPrice),
		Categories:  resolveCategories(p),
		Image:       primary,
		Gallery:     resolveGallery(p, primary),
		InStock:     inStock,
		Quantity:    quantity,
		Trending:    p.Trending,
		BestSeller:  p.BestSeller,
		NewArrival:  p.NewArrival,
		Rating:      rating,
		ReviewCount: reviewCount,
	}, nil
}

// ToCategories разбирает список категорий.
func ToCategories(data json.RawMessage) ([]domain.Category, error) {
	var payloads []CategoryPayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	categories := make([]domain.Category, 0, len(payloads))
	for _, payload := range payloads {
		if payload.ID == "" {
			continue
		}
		categories = append(categories, *domain.NewCategory(string(payload.ID), payload.Name))
	}

	return categories, nil
}

// resolvePrimaryImage выбирает основное изображение в порядке приоритета форм:
// images.primary -> product_images с тегом primary -> legacy image_url -> заглушка.
func resolvePrimaryImage(p *ProductPayload) string {
	if p.Images != nil && validImageRef(p.Images.Primary) {
		return p.Images.Primary
	}

	for _, img := range p.ProdImages {
		if img.Type == imageTypePrimary && validImageRef(img.URL) {
			return img.URL
		}
	}

	if validImageRef(p.ImageURL) {
		return p.ImageURL
	}

	return PlaceholderImage
}

// resolveGallery собирает галерею по той же цепочке форм, исключая основное
// изображение и отбрасывая некорректные ссылки.
func resolveGallery(p *ProductPayload, primary string) []string {
	var refs []string

	switch {
	case p.Images != nil && len(p.Images.Gallery) > 0:
		refs = p.Images.Gallery
	case len(p.ProdImages) > 0:
		for _, img := range p.ProdImages {
			if img.Type != imageTypePrimary {
				refs = append(refs, img.URL)
			}
		}
	}

	gallery := make([]string, 0, len(refs))
	for _, ref := range refs {
		if !validImageRef(ref) || ref == primary {
			continue
		}
		gallery = append(gallery, ref)
	}

	return gallery
}

// validImageRef отбраковывает пустые ссылки и слишком длинные data-URI.
func validImageRef(ref string) bool {
	if strings.TrimSpace(ref) == "" {
		return false
	}

	if strings.HasPrefix(ref, "data:") && len(ref) > maxInlineImageLen {
		return false
	}

	return true
}

func resolveCategories(p *ProductPayload) []string {
	if len(p.Categories) > 0 {
		return p.Categories
	}

	if p.Category != "" {
		return []string{p.Category}
	}

	return nil
}

// priceToCents переводит цену из условных единиц бэкенда в копейки.
// Отрицательные и некорректные значения обнуляются.
func priceToCents(n FlexNumber) int64 {
	if n == "" {
		return 0
	}

	d, err := decimal.NewFromString(string(n))
	if err != nil {
		return 0
	}

	if d.LessThan(decimal.Zero) {
		return 0
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
