package respond

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/shopspring/decimal"
)

func init() {
	// Balances and prices go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// JSON writes a success payload as-is.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}

// Detail writes the error body shared by every failure path:
// {"detail": message} with the mapped status.
func Detail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"detail": message})
}
