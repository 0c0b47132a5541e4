package domain

// Источник каталожных данных.
const (
	SourceLive     = "live"     // данные получены от бэкенда
	SourceFallback = "fallback" // отдан встроенный резервный каталог
)

// Product — каноническая запись товара каталога.
// После помещения в кэш запись не изменяется: поиск, фильтрация и сортировка
// работают только на чтение, обновление происходит заменой снимка целиком.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       int64 // Цена хранится в копейках
	OldPrice    int64 // 0 — скидки нет; скидка действительна только при OldPrice >= Price
	Categories  []string
	Image       string   // основное изображение, всегда отображаемая ссылка
	Gallery     []string // галерея без основного изображения
	InStock     bool
	Quantity    int
	Trending    bool
	BestSeller  bool
	NewArrival  bool
	Rating      float64 // 0–5
	ReviewCount int
}

// OnSale сообщает, действует ли на товар скидка.
func (p *Product) OnSale() bool {
	return p.OldPrice > 0 && p.OldPrice >= p.Price
}

// HasCategory проверяет принадлежность товара категории.
func (p *Product) HasCategory(id string) bool {
	for _, c := range p.Categories {
		if c == id {
			return true
		}
	}
	return false
}
