// Package errors define el sobre de error de la API: un código estable para
// clientes, un mensaje corto y un detalle opcional. Nada del error interno
// (causas, stacks) sale por el wire.
package errors

import (
	"encoding/json"
	"net/http"
)

// WriteError traduce err a su AppError (vía FromError) y lo serializa.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	payload := struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail,omitempty"`
	}{
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(payload)
}
