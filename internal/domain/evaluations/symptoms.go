package evaluations

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Symptoms guarda los sintomas tal como vienen del store.
// El camino de escritura siempre produce una lista, pero filas viejas pueden
// tener un único texto libre; en ese caso se conserva en Legacy y se muestra tal cual.
type Symptoms struct {
	Items  []string
	Legacy *string
}

// ParseSymptoms separa por coma, recorta cada token y descarta los vacíos.
func ParseSymptoms(raw string) Symptoms {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return Symptoms{Items: out}
}

// FormValue es lo que se pinta en el input de sintomas.
func (s Symptoms) FormValue() string {
	if s.IsLegacy() {
		return *s.Legacy
	}
	return strings.Join(s.Items, ", ")
}

func (s Symptoms) IsLegacy() bool {
	return s.Legacy != nil
}

func (s Symptoms) MarshalJSON() ([]byte, error) {
	if s.IsLegacy() {
		return json.Marshal(*s.Legacy)
	}
	items := s.Items
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}

// UnmarshalJSON acepta array de strings, string suelto o null.
func (s *Symptoms) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*s = Symptoms{}

	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	switch b[0] {
	case '[':
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return fmt.Errorf("sintomas: %w", err)
		}
		s.Items = items
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return fmt.Errorf("sintomas: %w", err)
		}
		s.Legacy = &v
	default:
		return fmt.Errorf("sintomas: unsupported json %q", string(b))
	}
	return nil
}

// Value serializa a JSON para una columna jsonb.
func (s Symptoms) Value() (driver.Value, error) {
	b, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan lee desde jsonb (bytes o string). Un texto que no es JSON se toma como legacy.
func (s *Symptoms) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*s = Symptoms{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("sintomas: cannot scan %T", src)
	}

	if err := s.UnmarshalJSON(b); err != nil {
		raw := string(b)
		*s = Symptoms{Legacy: &raw}
	}
	return nil
}
