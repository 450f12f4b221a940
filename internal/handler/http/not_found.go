// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-marketplace/internal/utils"
)

const routeNotFoundMessage = "route not found"

// routeNotFound answers every unmatched request with the generic JSON 404.
// It also serves chi's MethodNotAllowed hook, so an unsupported method on a
// known path looks exactly like an unknown path.
func routeNotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteMessage(w, routeNotFoundMessage, http.StatusNotFound)
}
