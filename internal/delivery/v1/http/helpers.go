package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DRSN-tech/storefront-gateway/internal/domain"
	"github.com/DRSN-tech/storefront-gateway/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrSearchTermTooShort):
		return http.StatusBadRequest, e.ErrSearchTermTooShort.Error()
	case errors.Is(err, e.ErrInvalidPriceRange):
		return http.StatusBadRequest, e.ErrInvalidPriceRange.Error()
	case errors.Is(err, e.ErrInvalidPage):
		return http.StatusBadRequest, e.ErrInvalidPage.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseFilterState собирает состояние фильтров витрины из query-параметров.
// Неизвестные значения сортировки сводятся к порядку по умолчанию,
// некорректные цены и страницы отклоняются как bad request.
func parseFilterState(query url.Values) (domain.FilterState, error) {
	state := domain.NewFilterState()

	for _, raw := range query["category"] {
		for _, cat := range strings.Split(raw, ",") {
			cat = strings.TrimSpace(cat)
			if cat != "" {
				state.Categories = append(state.Categories, cat)
			}
		}
	}

	priceMin, err := parsePriceToCents(query.Get("price_min"))
	if err != nil {
		return state, err
	}
	priceMax, err := parsePriceToCents(query.Get("price_max"))
	if err != nil {
		return state, err
	}
	if priceMax > 0 && priceMin > priceMax {
		return state, e.ErrInvalidPriceRange
	}
	state.Price = domain.PriceRange{Min: priceMin, Max: priceMax}

	state.InStock = query.Get("in_stock") == "true"
	state.OnSale = query.Get("on_sale") == "true"
	state.NewArrival = query.Get("new_arrival") == "true"
	state.SearchTerm = query.Get("q")
	state.Sort = domain.ParseSortOrder(query.Get("sort"))

	page, err := parsePage(query.Get("page"))
	if err != nil {
		return state, err
	}
	state.Page = page

	return state.Normalized(), nil
}

// parsePriceToCents переводит строку вида "599.99" или "600" в копейки.
// Пустая строка означает отсутствие границы. Ошибка возвращается, если:
// - формат некорректен
// - больше двух знаков после запятой
// - значение отрицательное или превышает разумный предел
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPriceRange
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPriceRange
	}

	maxPrice := decimal.NewFromInt(1_000_000_000).Mul(decimal.NewFromInt(100))
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPriceRange
	}

	if d.Exponent() < -2 {
		return 0, e.ErrInvalidPriceRange
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

func parsePage(s string) (int, error) {
	if s == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(s)
	if err != nil || page < 0 {
		return 0, e.ErrInvalidPage
	}
	if page == 0 {
		page = 1
	}

	return page, nil
}

// formatCents переводит копейки в строку цены с двумя знаками.
func formatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
