package domain

// Service услуга сотрудника; неизменяема после выбора в бронирование
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int // > 0
	Price           float64
}

// TotalDuration возвращает суммарную длительность набора услуг в минутах
func TotalDuration(services []*Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	return total
}

// TotalPrice возвращает суммарную цену набора услуг
func TotalPrice(services []*Service) float64 {
	total := 0.0
	for _, s := range services {
		total += s.Price
	}
	return total
}
