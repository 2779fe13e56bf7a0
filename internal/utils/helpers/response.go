package helpers

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	StatusCode int         `json:"status_code,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{Data: data})
	if err != nil {
		return
	}
}

// Error пишет ответ с текстом ошибки и машиночитаемым status_code.
func Error(w http.ResponseWriter, status int, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{Error: errMsg, StatusCode: status})
	if err != nil {
		return
	}
}
