package request

type Register struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `json:"role" validate:"omitempty,oneof=user owner"`
	BusinessName string `json:"businessName" validate:"required_if=Role owner"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AppleSignIn struct {
	IdentityToken string     `json:"identityToken" validate:"required"`
	Nonce         string     `json:"nonce"`
	User          *AppleUser `json:"user"`
}

type AppleUser struct {
	Email string         `json:"email"`
	Name  *AppleUserName `json:"name"`
}

type AppleUserName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
