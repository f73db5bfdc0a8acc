package generate_slots

import "time"

// resolvePeriod возвращает первый день периода и количество дней в нём.
//
// day — один календарный день референсной даты; week — неделя ISO
// (понедельник–воскресенье), содержащая референсную дату; next_week — неделя,
// следующая за ней. Оба недельных режима привязаны к референсной дате:
// исходная реализация привязывала next_week к текущему моменту, но это
// различие признано ошибкой и устранено.
func resolvePeriod(mode ViewMode, reference time.Time) (time.Time, int) {
	refDate := truncateToDay(reference)

	switch mode {
	case ModeWeek:
		return weekStart(refDate), 7
	case ModeNextWeek:
		return weekStart(refDate).AddDate(0, 0, 7), 7
	default:
		return refDate, 1
	}
}

// weekStart возвращает понедельник ISO-недели, содержащей дату
func weekStart(date time.Time) time.Time {
	// time.Weekday: Sunday=0 ... Saturday=6; смещение до понедельника
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
