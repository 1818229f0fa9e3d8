package httptransport

import (
	"net/http"

	docmodels "github.com/Flv72S/Eterna-Home-sub001/internal/document/models"
	housemodels "github.com/Flv72S/Eterna-Home-sub001/internal/house/models"
	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/middleware"
	httpjson "github.com/Flv72S/Eterna-Home-sub001/internal/transport/http/json"
	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

// handleListHouses implements GET /v1/houses: the house-membership endpoint.
// The list is ordered by house ID; clients derive their house scope from it
// wholesale on every refresh.
func (h *Handler) handleListHouses(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())

	accesses, err := h.houses.ListForUser(r.Context(), ident.UserID, ident.TenantID)
	if err != nil {
		httpjson.WriteDomainError(w, err)
		return
	}

	entries := make([]housemodels.HouseEntry, 0, len(accesses))
	for _, a := range accesses {
		entries = append(entries, housemodels.EntryOf(a))
	}
	httpjson.WriteJSON(w, http.StatusOK, housemodels.ListResponse{Houses: entries})
}

// handleListDocuments implements GET /v1/documents, the sample house-scoped
// resource. RequireHouse has already verified membership and stashed the
// grant, so the handler only reads within that house.
func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	grant, ok := middleware.HouseGrantFrom(r.Context())
	if !ok {
		httpjson.WriteError(w, http.StatusForbidden, dErrors.CodeHouseAccessDenied, "no house scope")
		return
	}

	docs, err := h.documents.ListByHouse(r.Context(), grant.HouseID)
	if err != nil {
		httpjson.WriteDomainError(w, err)
		return
	}

	entries := make([]docmodels.Entry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, docmodels.EntryOf(d))
	}
	httpjson.WriteJSON(w, http.StatusOK, docmodels.ListResponse{Documents: entries})
}
