package get_available_slots

import (
	"time"

	"github.com/bookline/BL-BookingEngine/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	StaffID    int64     // ID сотрудника
	ServiceIDs []int64   // Выбранные услуги (минимум одна)
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	StaffID         int64     // ID сотрудника
	DurationMinutes int       // Суммарная длительность выбранных услуг
	BufferMinutes   int       // Буфер сотрудника
	Slots           []Slot    // Упорядоченный список доступных слотов
}

// Slot модель временного слота
// Слот эфемерен: валиден только для снапшота расписания и бронирований,
// из которого был вычислен; окончательную проверку делает commit
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
}
