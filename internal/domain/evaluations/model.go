package evaluations

import "time"

// Evaluation es una evaluación sanitaria de una vaca (tabla "avaliacoes").
// Una vaca puede tener muchas; el flujo solo trabaja con la más reciente.
type Evaluation struct {
	ID    int64
	CowID int64 // vaca_id, requerido

	Symptoms     Symptoms
	CMT          *string  // California Mastitis Test, texto libre
	Conductivity *float64 // condutividade; nil != 0
	Notes        *string  // observacoes

	CreatedAt time.Time  // asignado por el store
	UpdatedAt *time.Time // lo pone el service al guardar
}

// Input son los valores crudos del formulario de avaliação.
type Input struct {
	Symptoms     string
	CMT          string
	Conductivity string
	Notes        string
}

// Form es la representación para precargar el formulario (nil => "").
type Form struct {
	Symptoms     string
	CMT          string
	Conductivity string
	Notes        string
}

func FormFrom(e Evaluation) Form {
	f := Form{Symptoms: e.Symptoms.FormValue()}
	if e.CMT != nil {
		f.CMT = *e.CMT
	}
	if e.Conductivity != nil {
		f.Conductivity = FormatConductivity(*e.Conductivity)
	}
	if e.Notes != nil {
		f.Notes = *e.Notes
	}
	return f
}

func FormFromInput(in Input) Form {
	return Form(in)
}
