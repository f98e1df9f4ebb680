// Package guard decide si una ruta del cliente se puede abrir según haya
// sesión o no. Cada comando del CLI declara su ruta.
package guard

import "strings"

const (
	Home             = "/"
	Login            = "/login"
	Register         = "/register"
	Dashboard        = "/dashboard"
	ObjectDetection  = "/object-detection"
	EmotionDetection = "/emotion-detection"
	FeedingTracker   = "/feeding-tracker"
	FeedingSchedule  = "/feeding-schedule"
	BabyProfile      = "/baby-profile"
)

type access int

const (
	public access = iota
	protected
	guestOnly
)

var routes = map[string]access{
	Home:             public,
	Login:            guestOnly,
	Register:         guestOnly,
	Dashboard:        protected,
	ObjectDetection:  protected,
	EmotionDetection: protected,
	FeedingTracker:   protected,
	FeedingSchedule:  protected,
	BabyProfile:      protected,
}

// Decision: Target es la ruta a mostrar; Redirected si difiere de la pedida.
type Decision struct {
	Target     string
	Redirected bool
}

// Resolve: rutas protegidas sin sesión => /login; /login y /register con
// sesión => /dashboard. Rutas desconocidas son públicas.
func Resolve(path string, authenticated bool) Decision {
	path = normalize(path)
	switch routes[path] {
	case protected:
		if !authenticated {
			return Decision{Target: Login, Redirected: true}
		}
	case guestOnly:
		if authenticated {
			return Decision{Target: Dashboard, Redirected: true}
		}
	}
	return Decision{Target: path}
}

// IsProtected indica si la ruta requiere sesión.
func IsProtected(path string) bool {
	return routes[normalize(path)] == protected
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return Home
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
