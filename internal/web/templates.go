package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"cattle-health-records/internal/platform/notify"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageDirectory  = "lista"
	pageCowForm    = "cadastro"
	pageEvaluation = "avaliacao"
	pageConfirm    = "excluir"
)

// renderer tiene un template por página: cada una define su propio "content"
// sobre el mismo layout.
type renderer struct {
	pages map[string]*template.Template
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"severityClass": severityClass,
	}
}

func newRenderer() (*renderer, error) {
	base, err := template.New("layout.html").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse layout: %w", err)
	}

	rd := &renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageDirectory, pageCowForm, pageEvaluation, pageConfirm} {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("web: clone layout: %w", err)
		}
		if _, err := t.ParseFS(templatesFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", name, err)
		}
		rd.pages[name] = t
	}
	return rd, nil
}

// render ejecuta a un buffer para no dejar respuestas a medias si el template falla.
func (rd *renderer) render(w http.ResponseWriter, name string, data any) error {
	t, ok := rd.pages[name]
	if !ok {
		return fmt.Errorf("web: unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("web: render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}

// severityClass mapea la severidad a las clases CSS del aviso.
func severityClass(s notify.Severity) string {
	switch s {
	case notify.SeveritySuccess:
		return "sucesso"
	case notify.SeverityError:
		return "erro"
	default:
		return "info"
	}
}
