// Package v1alpha1 maps the advisor operations onto the REST surface. Every
// handler is read only; failures come back as an error document with a fresh
// timestamp.
package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/clouddiag/openstack-advisor/internal/client"
	"github.com/clouddiag/openstack-advisor/internal/service"
)

type AdvisorHandler struct {
	advisor *service.AdvisorService
}

func NewAdvisorHandler(advisor *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisor: advisor}
}

func (h *AdvisorHandler) RegisterRoutes(router chi.Router) {
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/servers", h.ListServers)
		r.Get("/servers/{id}", h.GetServer)
		r.Get("/servers/{id}/analysis", h.AnalyzeServer)
		r.Get("/hypervisors", h.ListHypervisors)
		r.Get("/flavors", h.ListFlavors)
		r.Get("/flavors/{id}", h.GetFlavor)
		r.Get("/images", h.ListImages)
		r.Get("/images/{id}", h.GetImage)
		r.Get("/volumes", h.ListVolumes)
		r.Get("/volume-types", h.ListVolumeTypes)
		r.Get("/networks", h.ListNetworks)
		r.Get("/subnets", h.ListSubnets)
		r.Get("/routers", h.ListRouters)
		r.Get("/summary", h.GetSummary)
		r.Get("/utilization", h.GetUtilization)
		r.Get("/health/services", h.CheckServiceHealth)
		r.Get("/reports/inventory", h.GenerateReport)
	})
}

// renderError maps the typed errors onto status codes. Anything unexpected is
// a 500 with the error text.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if _, ok := err.(*service.ErrValidation); ok {
		status = http.StatusBadRequest
	} else if client.IsNotFound(err) {
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		zap.S().Named("handlers").Errorw("request failed", "path", r.URL.Path, "error", err)
	}
	_ = render.Render(w, r, NewErrorReply(status, err.Error()))
}

func (h *AdvisorHandler) ListServers(w http.ResponseWriter, r *http.Request) {
	items, diagnostic := h.advisor.ListServers(r.Context())
	_ = render.Render(w, r, ServersReply{Count: len(items), Servers: items, Diagnostic: diagnostic})
}

func (h *AdvisorHandler) GetServer(w http.ResponseWriter, r *http.Request) {
	server, err := h.advisor.GetServerDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	_ = render.Render(w, r, ServerDetailReply{*server})
}

func (h *AdvisorHandler) AnalyzeServer(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.advisor.AnalyzeServerResources(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	_ = render.Render(w, r, AnalysisReply{*analysis})
}

func (h *AdvisorHandler) ListHypervisors(w http.ResponseWriter, r *http.Request) {
	items, diagnostic := h.advisor.ListHypervisors(r.Context())
	_ = render.Render(w, r, HypervisorsReply{Count: len(items), Hypervisors: items, Diagnostic: diagnostic})
}

func (h *AdvisorHandler) ListFlavors(w http.ResponseWriter, r *http.Request) {
	items, diagnostic := h.advisor.ListFlavors(r.Context())
	_ = render.Render(w, r, FlavorsReply{Count: len(items), Flavors: items, Diagnostic: diagnostic})
}

func (h *AdvisorHandler) GetFlavor(w http.ResponseWriter, r *http.Request) {
	flavor, err := h.advisor.GetFlavorDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	_ = render.Render(w, r, FlavorDetailReply{*flavor})
}

func (h *AdvisorHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	items, diagnostic := h.advisor.ListImages(r.Context())
	_ = render.Render(w, r, ImagesReply{Count: len(items), Images: items, Diagnostic: diagnostic})
}

func (h *AdvisorHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	image, err := h.advisor.GetImageDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	_ = render.Render(w, r, ImageDetailReply{*image})
}

func (h *AdvisorHandler) ListVolumes(w http.ResponseWriter, r *http.Request) {
	items, diagnostic := h.advisor.ListVolumes(r.Context())
	_ = render.Render(w, r, VolumesReply{Count: len(items), Volumes: items, Diagnostic: diagnostic})
}

func (h *AdvisorHandler) ListVolumeTypes(w http.ResponseWriter, r *http.Request) {
	items, diagnostic := h.advisor.ListVolumeTypes(r.Context())
	_ = render.Render(w, r, VolumeTypesReply{Count: len(items), VolumeTypes: items, Diagnostic: diagnostic})
}

func (h *AdvisorHandler) ListNetworks(w http.ResponseWriter, r *http.Request) {
	items, diagnostic := h.advisor.ListNetworks(r.Context())
	_ = render.Render(w, r, NetworksReply{Count: len(items), Networks: items, Diagnostic: diagnostic})
}

func (h *AdvisorHandler) ListSubnets(w http.ResponseWriter, r *http.Request) {
	items, diagnostic := h.advisor.ListSubnets(r.Context())
	_ = render.Render(w, r, SubnetsReply{Count: len(items), Subnets: items, Diagnostic: diagnostic})
}

func (h *AdvisorHandler) ListRouters(w http.ResponseWriter, r *http.Request) {
	items, diagnostic := h.advisor.ListRouters(r.Context())
	_ = render.Render(w, r, RoutersReply{Count: len(items), Routers: items, Diagnostic: diagnostic})
}

func (h *AdvisorHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary := h.advisor.GetInfrastructureSummary(r.Context())
	_ = render.Render(w, r, SummaryReply{*summary})
}

func (h *AdvisorHandler) GetUtilization(w http.ResponseWriter, r *http.Request) {
	utilization, err := h.advisor.GetResourceUtilization(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	_ = render.Render(w, r, UtilizationReply{*utilization})
}

func (h *AdvisorHandler) CheckServiceHealth(w http.ResponseWriter, r *http.Request) {
	report := h.advisor.CheckServiceHealth(r.Context())
	_ = render.Render(w, r, HealthReply{*report})
}

func (h *AdvisorHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	report := h.advisor.GenerateInventoryReport(r.Context(), format)
	_ = render.Render(w, r, ReportReply{report})
}
