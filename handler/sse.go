package handler

import (
	"encoding/json"
	"net/http"
)

// Signals patches DataStar signals. Non-DataStar requests get the same
// payload as a plain JSON body.
//
//	return handler.Signals(map[string]any{
//		"errors": feedback.Fields,
//	})
func Signals(signals map[string]any) Response {
	return ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
		payload, err := json.Marshal(signals)
		if err != nil {
			return err
		}

		if !IsDataStar(r) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, err = w.Write(payload)
			return err
		}

		return NewSSE(w, r).PatchSignals(payload)
	})
}
