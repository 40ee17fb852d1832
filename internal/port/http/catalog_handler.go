package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/catalog"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
)

// area is a suburb in the shape booking widgets expect.
type area struct {
	ID                 string           `json:"id"`
	Slug               string           `json:"slug"`
	Name               string           `json:"name"`
	PriceAdjustmentPct int              `json:"price_adjustment_pct"`
	RegionID           string           `json:"region_id"`
	IsActive           bool             `json:"is_active"`
	Region             entity.RegionRef `json:"region"`
}

func areaSlug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func (h *Handler) HandleListServices(w http.ResponseWriter, r *http.Request) {
	respondWithCatalog(w, h.catalog.ListServices(r.Context()))
}

func (h *Handler) HandleGetService(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	svc, source, err := h.catalog.GetServiceBySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, err, "Failed to get service", h.log)
		return
	}
	w.Header().Set(dataSourceHeader, string(source))
	respondWithJSON(w, http.StatusOK, svc)
}

func (h *Handler) HandleListExtras(w http.ResponseWriter, r *http.Request) {
	respondWithCatalog(w, h.catalog.ListExtras(r.Context()))
}

func (h *Handler) HandleListRegions(w http.ResponseWriter, r *http.Request) {
	respondWithCatalog(w, h.catalog.ListRegions(r.Context()))
}

func (h *Handler) HandleListSuburbs(w http.ResponseWriter, r *http.Request) {
	respondWithCatalog(w, h.catalog.ListSuburbs(r.Context(), r.URL.Query().Get("region_id")))
}

// HandleListAreas has no seed fallback: a degraded suburb answer is a 500.
func (h *Handler) HandleListAreas(w http.ResponseWriter, r *http.Request) {
	result := h.catalog.ListSuburbs(r.Context(), r.URL.Query().Get("region_id"))
	if result.Degraded() {
		h.log.Warnf("Areas unavailable: %v", result.Cause)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch areas")
		return
	}

	areas := make([]area, 0, len(result.Items))
	for _, s := range result.Items {
		areas = append(areas, area{
			ID:       s.ID,
			Slug:     areaSlug(s.Name),
			Name:     s.Name,
			RegionID: s.RegionID,
			IsActive: s.IsActive,
			Region:   s.Region,
		})
	}
	respondWithCatalog(w, catalog.Result[area]{Items: areas, Source: result.Source})
}

func (h *Handler) HandleListCleaners(w http.ResponseWriter, r *http.Request) {
	respondWithCatalog(w, h.catalog.ListCleaners(r.Context(), r.URL.Query().Get("region_id")))
}
