package e

import "fmt"

var (
	// Внутренние ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")

	// Внутренние ошибки каталога
	ErrBackendUnavailable = fmt.Errorf("catalog backend unavailable")
	ErrUnexpectedPayload  = fmt.Errorf("unexpected payload shape")
	ErrProductIDMissing   = fmt.Errorf("product id is missing")

	// 400 Bad Request
	ErrStatusBadRequest   = fmt.Errorf("bad request")
	ErrSearchTermTooShort = fmt.Errorf("search term is too short")
	ErrInvalidPriceRange  = fmt.Errorf("invalid price range")
	ErrInvalidPage        = fmt.Errorf("invalid page number")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
