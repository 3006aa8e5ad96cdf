package constants

import "time"

// Таймаут на каждый исходящий сетевой вызов (fetch, подача заявки,
// уведомление, обновление сессии). По таймауту - обычная транспортная ошибка.
const RequestTimeout = 30 * time.Second

// Интервал устаревания сессионных cookie Degewo. Обновление всегда ленивое,
// по требованию, не чаще одного раза за цикл.
const DegewoSessionRefreshInterval = 30 * time.Minute

// Расписания по умолчанию (стандартный 5-польный cron, таймзона задается отдельно).
// Интервал каждого источника должен превышать ожидаемую длительность его цикла,
// чтобы не накладывались прогоны одного и того же источника.
const (
	DefaultScheduleWohnraumkarte = "*/2 7-18 * * 1-5"
	DefaultScheduleGewobag       = "*/3 7-22 * * 1-5"
	DefaultScheduleDegewo        = "*/15 7-22 * * 1-5"
	DefaultScheduleTimezone      = "Europe/Berlin"
)
