package auth

// Claims representa la información extraída del token.
// Name se usa para armar textos de notificación ("X quiere adoptar a Y").
type Claims struct {
	UserID string
	Name   string
	Email  string
}
