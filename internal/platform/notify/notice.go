// Package notify es la superficie de avisos de la UI: un mensaje transitorio con
// severidad que se muestra por un tiempo fijo y se oculta solo.
package notify

import "time"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

const DefaultDuration = 3 * time.Second

// Notice es lo único que la superficie necesita para pintar un aviso.
type Notice struct {
	Text     string
	Severity Severity
	Duration time.Duration
}

func Info(text string) Notice    { return Notice{Text: text, Severity: SeverityInfo, Duration: DefaultDuration} }
func Success(text string) Notice { return Notice{Text: text, Severity: SeveritySuccess, Duration: DefaultDuration} }
func Error(text string) Notice   { return Notice{Text: text, Severity: SeverityError, Duration: DefaultDuration} }

func (n Notice) WithDuration(d time.Duration) Notice {
	if d > 0 {
		n.Duration = d
	}
	return n
}

func (n Notice) IsZero() bool {
	return n.Text == ""
}

// DurationMillis es lo que consume el template (data-duration).
func (n Notice) DurationMillis() int64 {
	d := n.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	return d.Milliseconds()
}

// Redirect es la navegación diferida tras un guardado exitoso: se deja leer el
// aviso antes de cambiar de página.
type Redirect struct {
	URL   string
	After time.Duration
}

// Seconds para <meta http-equiv="refresh">.
func (r Redirect) Seconds() string {
	return formatSeconds(r.After)
}
