package response

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	Role         string `json:"role,omitempty"`
	UserType     string `json:"userType"`
	BusinessName string `json:"businessName,omitempty"`
}

type Auth struct {
	User       User   `json:"user"`
	Token      string `json:"-"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

type DemoAccount struct {
	Message     string          `json:"message"`
	Credentials DemoCredentials `json:"credentials"`
}

type DemoCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AppleJWKS is the key set served by Apple for Sign in with Apple identity
// token verification.
type AppleJWKS struct {
	Keys []AppleJWK `json:"keys"`
}

type AppleJWK struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}
