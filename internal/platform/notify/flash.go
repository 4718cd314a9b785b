package notify

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	flashCookie = "aviso"
	flashTTL    = time.Minute
)

// Flash lleva un Notice a través de un redirect (p.ej. "Vaca excluída!" y vuelta a
// la lista). El aviso queda del lado del server; la cookie solo tiene la clave.
type Flash struct {
	store *cache.Cache
}

func NewFlash() *Flash {
	return &Flash{store: cache.New(flashTTL, 2*flashTTL)}
}

// Put guarda n para el próximo request del mismo navegador.
func (f *Flash) Put(w http.ResponseWriter, n Notice) {
	if n.IsZero() {
		return
	}
	key := uuid.NewString()
	f.store.Set(key, n, cache.DefaultExpiration)

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    key,
		Path:     "/",
		MaxAge:   int(flashTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop devuelve el aviso pendiente (una sola vez) y limpia la cookie.
func (f *Flash) Pop(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	c, err := r.Cookie(flashCookie)
	if err != nil || strings.TrimSpace(c.Value) == "" {
		return Notice{}, false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	v, found := f.store.Get(c.Value)
	if !found {
		return Notice{}, false
	}
	f.store.Delete(c.Value)

	n, ok := v.(Notice)
	return n, ok
}

func formatSeconds(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
