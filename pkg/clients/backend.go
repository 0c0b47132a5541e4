package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/DRSN-tech/storefront-gateway/internal/cfg"
	"github.com/DRSN-tech/storefront-gateway/pkg/e"
	"github.com/jimlawless/whereami"
)

// BackendClient — HTTP-клиент каталогового API бэкенда.
type BackendClient struct {
	http    *http.Client
	baseURL string
}

func NewBackendClient(cfg *cfg.BackendCfg) *BackendClient {
	return &BackendClient{
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// GetJSON выполняет GET-запрос и возвращает тело ответа.
// Любой статус вне 2xx считается транспортной ошибкой.
func (c *BackendClient) GetJSON(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %s %s", e.ErrBackendUnavailable, res.Status, path))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return body, nil
}
