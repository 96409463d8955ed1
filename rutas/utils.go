package rutas

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"time"
)

// ---------------------------
// ESTRUCTURAS DE RESPUESTA
// ---------------------------
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ---------------------------
// AUXILIARES
// ---------------------------
func writeErrorResponse(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := ErrorResponse{Message: message, Detail: detail}
	log.Printf("HTTP %d: %s | %s", status, message, detail)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeSuccessResponse(w http.ResponseWriter, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(SuccessResponse{
		Message: message,
		Data:    data,
	})
}

func round(num float64, decimals ...int) float64 {
	d := 2
	if len(decimals) > 0 && decimals[0] >= 0 {
		d = decimals[0]
	}
	factor := math.Pow(10, float64(d))
	return math.Round(num*factor) / factor
}

const formatoFecha = "2006-01-02 15:04:05"

func ahoraStr() string {
	return time.Now().Format(formatoFecha)
}
