package converter

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ProductPayload — сырой товар каталогового API. Бэкенд исторически отдаёт
// несколько форм одного и того же: вложенный блок images, плоский массив
// product_images с тегами и одиночное legacy-поле image_url.
type ProductPayload struct {
	ID          FlexString            `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Price       FlexNumber            `json:"price"`
	OldPrice    FlexNumber            `json:"old_price"`
	Categories  []string              `json:"categories"`
	Category    string                `json:"category"` // одиночная legacy-форма
	Images      *ImagesPayload        `json:"images"`
	ProdImages  []ProductImagePayload `json:"product_images"`
	ImageURL    string                `json:"image_url"` // legacy-форма
	InStock     *bool                 `json:"in_stock"`
	Quantity    *int                  `json:"quantity"`
	Trending    bool                  `json:"trending"`
	BestSeller  bool                  `json:"best_seller"`
	NewArrival  bool                  `json:"new_arrival"`
	Rating      float64               `json:"rating"`
	ReviewCount int                   `json:"review_count"`
}

// ImagesPayload — вложенная форма изображений.
type ImagesPayload struct {
	Primary string   `json:"primary"`
	Gallery []string `json:"gallery"`
}

// ProductImagePayload — элемент плоского массива изображений.
type ProductImagePayload struct {
	URL  string `json:"url"`
	Type string `json:"image_type"` // "primary" | "gallery"
}

// CategoryPayload — категория каталогового API.
type CategoryPayload struct {
	ID   FlexString `json:"id"`
	Name string     `json:"name"`
}

// Envelope — стандартный конверт ответа {success, data}.
type Envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// FlexString принимает и строковый, и числовой идентификатор.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = FlexString(num.String())
	return nil
}

// FlexNumber принимает число или число в кавычках ("599.99").
type FlexNumber string

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*n = FlexNumber(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = FlexNumber(num.String())
	return nil
}

// Float возвращает числовое значение; пустое или некорректное значение — 0.
func (n FlexNumber) Float() float64 {
	if n == "" {
		return 0
	}

	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0
	}

	return f
}
