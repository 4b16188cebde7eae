package middleware

import (
	"encoding/json"
	"net/http"
	"scaffold-rental/internal/api/handler/dto"
)

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: dto.ErrorDetail{Message: message}})
}
