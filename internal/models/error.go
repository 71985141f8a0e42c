package models

// ErrorResponse is the error body returned by the remote ledger store.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
