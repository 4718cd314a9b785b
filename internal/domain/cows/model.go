package cows

// Cow representa un animal del rebaño tal como lo guarda el store (tabla "vacas").
// Los campos opcionales son punteros: nil = ausente en el store.
type Cow struct {
	ID int64 // asignado por el store en el insert; inmutable

	Name string // nome
	Tag  string // identificacao (caravana / brinco); no se valida unicidad aquí

	Breed     *string // raca
	BirthDate *string // data_nascimento, tal cual viene del store (YYYY-MM-DD)
	Status    *string
}

// Input son los valores del formulario de cadastro.
// Name, Tag y Breed se recortan; BirthDate y Status pasan crudos.
type Input struct {
	Name      string
	Tag       string
	Breed     string
	BirthDate string
	Status    string
}

// Normalize aplica la única "validación" del flujo: trim de nome/identificacao/raca.
func (in Input) Normalize() Input {
	return Input{
		Name:      trim(in.Name),
		Tag:       trim(in.Tag),
		Breed:     trim(in.Breed),
		BirthDate: in.BirthDate,
		Status:    in.Status,
	}
}

// ToCow arma el registro a persistir. No asigna ID.
func (in Input) ToCow() Cow {
	n := in.Normalize()
	return Cow{
		Name:      n.Name,
		Tag:       n.Tag,
		Breed:     strPtr(n.Breed),
		BirthDate: strPtr(n.BirthDate),
		Status:    strPtr(n.Status),
	}
}

// InputFrom hace el camino inverso para precargar el formulario en modo edición
// (nil => "").
func InputFrom(c Cow) Input {
	return Input{
		Name:      c.Name,
		Tag:       c.Tag,
		Breed:     deref(c.Breed),
		BirthDate: deref(c.BirthDate),
		Status:    deref(c.Status),
	}
}

func strPtr(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
