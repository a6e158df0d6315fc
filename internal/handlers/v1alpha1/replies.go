package v1alpha1

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
)

type ServersReply struct {
	Count      int          `json:"count"`
	Servers    []api.Server `json:"servers"`
	Diagnostic string       `json:"diagnostic,omitempty"`
}

type HypervisorsReply struct {
	Count       int              `json:"count"`
	Hypervisors []api.Hypervisor `json:"hypervisors"`
	Diagnostic  string           `json:"diagnostic,omitempty"`
}

type FlavorsReply struct {
	Count      int          `json:"count"`
	Flavors    []api.Flavor `json:"flavors"`
	Diagnostic string       `json:"diagnostic,omitempty"`
}

type ImagesReply struct {
	Count      int         `json:"count"`
	Images     []api.Image `json:"images"`
	Diagnostic string      `json:"diagnostic,omitempty"`
}

type VolumesReply struct {
	Count      int          `json:"count"`
	Volumes    []api.Volume `json:"volumes"`
	Diagnostic string       `json:"diagnostic,omitempty"`
}

type VolumeTypesReply struct {
	Count       int              `json:"count"`
	VolumeTypes []api.VolumeType `json:"volume_types"`
	Diagnostic  string           `json:"diagnostic,omitempty"`
}

type NetworksReply struct {
	Count      int           `json:"count"`
	Networks   []api.Network `json:"networks"`
	Diagnostic string        `json:"diagnostic,omitempty"`
}

type SubnetsReply struct {
	Count      int          `json:"count"`
	Subnets    []api.Subnet `json:"subnets"`
	Diagnostic string       `json:"diagnostic,omitempty"`
}

type RoutersReply struct {
	Count      int          `json:"count"`
	Routers    []api.Router `json:"routers"`
	Diagnostic string       `json:"diagnostic,omitempty"`
}

type ServerDetailReply struct {
	api.Server
}

type FlavorDetailReply struct {
	api.Flavor
}

type ImageDetailReply struct {
	api.Image
}

type AnalysisReply struct {
	api.ServerAnalysis
}

type SummaryReply struct {
	api.InfrastructureSummary
}

type UtilizationReply struct {
	api.ResourceUtilization
}

type HealthReply struct {
	api.ServiceHealthReport
}

type ReportReply struct {
	api.InventoryReport
}

// ErrorReply is the failure document. Timestamp is computed in the failure
// path, never reused from a partially built result.
type ErrorReply struct {
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`

	status int
}

func NewErrorReply(status int, message string) *ErrorReply {
	return &ErrorReply{
		Error:     message,
		Timestamp: time.Now().UTC(),
		status:    status,
	}
}

func (e *ErrorReply) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.status)
	return nil
}

func (s ServersReply) Render(w http.ResponseWriter, r *http.Request) error     { return nil }
func (h HypervisorsReply) Render(w http.ResponseWriter, r *http.Request) error { return nil }
func (f FlavorsReply) Render(w http.ResponseWriter, r *http.Request) error     { return nil }
func (i ImagesReply) Render(w http.ResponseWriter, r *http.Request) error      { return nil }
func (v VolumesReply) Render(w http.ResponseWriter, r *http.Request) error     { return nil }
func (v VolumeTypesReply) Render(w http.ResponseWriter, r *http.Request) error { return nil }
func (n NetworksReply) Render(w http.ResponseWriter, r *http.Request) error    { return nil }
func (s SubnetsReply) Render(w http.ResponseWriter, r *http.Request) error     { return nil }
func (r RoutersReply) Render(w http.ResponseWriter, req *http.Request) error   { return nil }

func (s ServerDetailReply) Render(w http.ResponseWriter, r *http.Request) error { return nil }
func (f FlavorDetailReply) Render(w http.ResponseWriter, r *http.Request) error { return nil }
func (i ImageDetailReply) Render(w http.ResponseWriter, r *http.Request) error  { return nil }
func (a AnalysisReply) Render(w http.ResponseWriter, r *http.Request) error     { return nil }
func (s SummaryReply) Render(w http.ResponseWriter, r *http.Request) error      { return nil }
func (u UtilizationReply) Render(w http.ResponseWriter, r *http.Request) error  { return nil }
func (h HealthReply) Render(w http.ResponseWriter, r *http.Request) error       { return nil }
func (rr ReportReply) Render(w http.ResponseWriter, r *http.Request) error      { return nil }
