package web

import (
	"strconv"
	"strings"
	"time"
)

// Placeholder es lo que se pinta cuando un campo opcional no tiene valor.
const Placeholder = "-"

const displayDate = "02/01/2006"

// layouts sin zona horaria (se interpretan en loc).
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

// layouts con zona explícita.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
}

// FormatDate pasa una fecha ISO del store a DD/MM/YYYY en loc.
// Una fecha sola (YYYY-MM-DD) se toma como medianoche UTC y después se muestra en
// loc, así que en zonas al oeste de UTC cae en el día anterior.
// Vacío o inválido => Placeholder.
func FormatDate(value string, loc *time.Location) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return Placeholder
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t.In(loc).Format(displayDate)
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(loc).Format(displayDate)
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.Format(displayDate)
		}
	}
	return Placeholder
}

func formatDatePtr(value *string, loc *time.Location) string {
	if value == nil {
		return Placeholder
	}
	return FormatDate(*value, loc)
}

// orPlaceholder: nil o blanco => "-".
func orPlaceholder(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return Placeholder
	}
	return *s
}

func EvaluateURL(id int64) string {
	return "/avaliacao?id=" + strconv.FormatInt(id, 10)
}

func EditURL(id int64) string {
	return "/cadastro?id=" + strconv.FormatInt(id, 10)
}

func DeleteURL(id int64) string {
	return "/vacas/" + strconv.FormatInt(id, 10) + "/excluir"
}

// parseID acepta solo enteros positivos.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
