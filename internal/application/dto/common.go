package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje y, opcionalmente, el estado resultante.
type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}
