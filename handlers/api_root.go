package handlers

import (
	"net/http"

	"github.com/upb/esg-data-management/utils"
)

// APIRoot lists the collection endpoints under prefix
func APIRoot(prefix string) http.HandlerFunc {
	links := map[string]string{
		"companies":      prefix + "/companies/",
		"business-units": prefix + "/business-units/",
		"metrics":        prefix + "/metrics/",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, links)
	}
}
