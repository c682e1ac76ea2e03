package driver

// Navigator abstracts the host application's routing so the client layer can
// signal a redirect-to-login side effect without knowing anything about views.
type Navigator interface {
	// CurrentPath returns the route the application is currently showing.
	CurrentPath() string
	// NavigateTo asks the application to move to path.
	NavigateTo(path string)
}

// NoOpNavigator is the default Navigator for headless use.
type NoOpNavigator struct{}

func (NoOpNavigator) CurrentPath() string { return "/" }
func (NoOpNavigator) NavigateTo(string)   {}

// LoginPath is where an irrecoverable authentication failure redirects.
const LoginPath = "/login"

var publicPaths = []string{"/login", "/signup"}

// IsPublicPath reports whether path is an unauthenticated page on which
// auth failures must not trigger a redirect.
func IsPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
