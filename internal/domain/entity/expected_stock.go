package entity

// ExpectedStock cantidad esperada de un EAN para una sesión (importada del cliente).
type ExpectedStock struct {
	ID               string
	SessionID        string
	EAN              string
	ExpectedQuantity int
}
