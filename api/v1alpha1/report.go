package v1alpha1

import "time"

// HealthStatus is the coarse per-server health label.
type HealthStatus string

const (
	HealthStatusHealthy       HealthStatus = "healthy"
	HealthStatusError         HealthStatus = "error"
	HealthStatusStopped       HealthStatus = "stopped"
	HealthStatusTransitioning HealthStatus = "transitioning"
)

// ServiceStatus is the per-backing-service probe verdict.
type ServiceStatus string

const (
	ServiceStatusHealthy   ServiceStatus = "healthy"
	ServiceStatusUnhealthy ServiceStatus = "unhealthy"
)

// OverallStatus folds the per-service verdicts into one value.
type OverallStatus string

const (
	OverallStatusHealthy  OverallStatus = "healthy"
	OverallStatusDegraded OverallStatus = "degraded"
	OverallStatusCritical OverallStatus = "critical"
)

type RecommendationPriority string

const (
	RecommendationPriorityLow      RecommendationPriority = "low"
	RecommendationPriorityMedium   RecommendationPriority = "medium"
	RecommendationPriorityHigh     RecommendationPriority = "high"
	RecommendationPriorityCritical RecommendationPriority = "critical"
)

// CapacityMetric is a total/used pair with the derived fields.
// UtilizationPercent is 0 when Total is 0 and is not capped at 100, so
// over-commit stays visible. Units (vcpus, MB, GB) depend on the field
// carrying the metric.
type CapacityMetric struct {
	Total              int64   `json:"total"`
	Used               int64   `json:"used"`
	Available          int64   `json:"available"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// ComputeCapacity aggregates hypervisor capacity per dimension.
// VCPUs counts cores, Memory is MB, LocalStorage is GB.
type ComputeCapacity struct {
	VCPUs        CapacityMetric `json:"vcpus"`
	Memory       CapacityMetric `json:"memory"`
	LocalStorage CapacityMetric `json:"local_storage"`
}

// StatusBreakdown maps a status value to the number of resources carrying it.
type StatusBreakdown map[string]int

type ServiceHealth struct {
	Service   string        `json:"service_name"`
	Status    ServiceStatus `json:"status"`
	Message   string        `json:"message"`
	LastCheck time.Time     `json:"last_check"`
}

type ServiceHealthSummary struct {
	HealthyServices   int `json:"healthy_services"`
	UnhealthyServices int `json:"unhealthy_services"`
	TotalServices     int `json:"total_services"`
}

type ServiceHealthReport struct {
	Timestamp     time.Time                `json:"timestamp"`
	Services      map[string]ServiceHealth `json:"services"`
	OverallStatus OverallStatus            `json:"overall_status"`
	Summary       ServiceHealthSummary     `json:"summary"`
}

// Recommendation is one advisory entry. Affected carries the identifiers the
// rule flagged (server names, hostnames, flavor names) when the rule has any.
type Recommendation struct {
	Type     string                 `json:"type"`
	Resource string                 `json:"resource"`
	Message  string                 `json:"message"`
	Priority RecommendationPriority `json:"priority"`
	Affected []string               `json:"affected,omitempty"`
}

type ReportMetadata struct {
	ReportID    string    `json:"report_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Format      string    `json:"format"`
	Services    []string  `json:"openstack_services"`
	Diagnostics []string  `json:"diagnostics,omitempty"`
}

// ResourceCounts is the per-kind total in the report summary.
type ResourceCounts struct {
	Servers     int `json:"servers"`
	Hypervisors int `json:"hypervisors"`
	Flavors     int `json:"flavors"`
	Images      int `json:"images"`
	Volumes     int `json:"volumes"`
	Networks    int `json:"networks"`
	Subnets     int `json:"subnets"`
	Routers     int `json:"routers"`
}

type ReportSummary struct {
	TotalResources            ResourceCounts  `json:"total_resources"`
	ServerStatusBreakdown     StatusBreakdown `json:"server_status_breakdown"`
	HypervisorStatusBreakdown StatusBreakdown `json:"hypervisor_status_breakdown"`
}

type ServerStats struct {
	Total         int             `json:"total"`
	ByStatus      StatusBreakdown `json:"by_status"`
	ActiveServers int             `json:"active_servers"`
	ErrorServers  []Server        `json:"error_servers"`
}

type HypervisorStats struct {
	Total    int             `json:"total"`
	Enabled  int             `json:"enabled"`
	Capacity ComputeCapacity `json:"capacity"`
}

type FlavorSpecRange struct {
	SmallestVCPU  int64 `json:"smallest_vcpu"`
	LargestVCPU   int64 `json:"largest_vcpu"`
	SmallestRAMMB int64 `json:"smallest_ram_mb"`
	LargestRAMMB  int64 `json:"largest_ram_mb"`
}

type FlavorStats struct {
	Total         int             `json:"total"`
	PublicFlavors int             `json:"public_flavors"`
	ResourceSpecs FlavorSpecRange `json:"resource_specs"`
}

type ComputeSection struct {
	Servers     ServerStats     `json:"servers"`
	Hypervisors HypervisorStats `json:"hypervisors"`
	Flavors     FlavorStats     `json:"flavors"`

	// Populated only in detailed reports.
	ServerDetails     []Server     `json:"server_details,omitempty"`
	HypervisorDetails []Hypervisor `json:"hypervisor_details,omitempty"`
	FlavorDetails     []Flavor     `json:"flavor_details,omitempty"`
}

type VolumeStats struct {
	Total          int             `json:"total"`
	TotalSizeGB    int64           `json:"total_size_gb"`
	ByStatus       StatusBreakdown `json:"by_status"`
	Available      int             `json:"available"`
	InUse          int             `json:"in_use"`
	AttachmentRate float64         `json:"attachment_rate"`
}

type VolumeTypeStats struct {
	Total       int `json:"total"`
	PublicTypes int `json:"public_types"`
}

type StorageSection struct {
	Volumes     VolumeStats     `json:"volumes"`
	VolumeTypes VolumeTypeStats `json:"volume_types"`

	VolumeDetails     []Volume     `json:"volume_details,omitempty"`
	VolumeTypeDetails []VolumeType `json:"volume_type_details,omitempty"`
}

type NetworkStats struct {
	Total    int             `json:"total"`
	External int             `json:"external"`
	Internal int             `json:"internal"`
	Shared   int             `json:"shared"`
	ByStatus StatusBreakdown `json:"by_status"`
}

type SubnetStats struct {
	Total       int `json:"total"`
	IPv4        int `json:"ipv4"`
	IPv6        int `json:"ipv6"`
	DHCPEnabled int `json:"dhcp_enabled"`
}

type RouterStats struct {
	Total               int `json:"total"`
	Active              int `json:"active"`
	WithExternalGateway int `json:"with_external_gateway"`
}

type NetworkingSection struct {
	Networks NetworkStats `json:"networks"`
	Subnets  SubnetStats  `json:"subnets"`
	Routers  RouterStats  `json:"routers"`

	NetworkDetails []Network `json:"network_details,omitempty"`
	SubnetDetails  []Subnet  `json:"subnet_details,omitempty"`
	RouterDetails  []Router  `json:"router_details,omitempty"`
}

type ComputeUtilization struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent"`
}

type UtilizationSection struct {
	ComputeUtilization         ComputeUtilization `json:"compute_utilization"`
	HighUtilizationHypervisors []string           `json:"high_utilization_hypervisors"`
	ServersPerHypervisor       map[string]int     `json:"servers_per_hypervisor"`
}

// InventoryReport is the top-level report document.
type InventoryReport struct {
	Metadata            ReportMetadata     `json:"report_metadata"`
	Summary             ReportSummary      `json:"summary"`
	Compute             ComputeSection     `json:"compute"`
	Storage             StorageSection     `json:"storage"`
	Networking          NetworkingSection  `json:"networking"`
	ResourceUtilization UtilizationSection `json:"resource_utilization"`
	Recommendations     []Recommendation   `json:"recommendations"`
}

// InfrastructureSummary is the condensed cross-service snapshot.
type InfrastructureSummary struct {
	Timestamp time.Time `json:"timestamp"`
	Compute   struct {
		Servers struct {
			Total    int             `json:"total"`
			ByStatus StatusBreakdown `json:"by_status"`
		} `json:"servers"`
		Hypervisors struct {
			Total  int            `json:"total"`
			VCPUs  CapacityMetric `json:"vcpus"`
			Memory CapacityMetric `json:"memory"`
		} `json:"hypervisors"`
	} `json:"compute"`
	Storage struct {
		Volumes struct {
			Total       int   `json:"total"`
			TotalSizeGB int64 `json:"total_size_gb"`
		} `json:"volumes"`
	} `json:"storage"`
	Network struct {
		Networks struct {
			Total    int `json:"total"`
			External int `json:"external"`
		} `json:"networks"`
	} `json:"network"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// HypervisorUtilization is the per-host utilization triple.
type HypervisorUtilization struct {
	Hostname   string         `json:"hypervisor"`
	Status     string         `json:"status"`
	RunningVMs int            `json:"running_vms"`
	CPU        CapacityMetric `json:"cpu"`
	Memory     CapacityMetric `json:"memory"`
	Disk       CapacityMetric `json:"disk"`
}

type UtilizationSummary struct {
	TotalHypervisors  int `json:"total_hypervisors"`
	ActiveHypervisors int `json:"active_hypervisors"`
	TotalVMs          int `json:"total_vms"`
}

type ResourceUtilization struct {
	Timestamp   time.Time               `json:"timestamp"`
	Hypervisors []HypervisorUtilization `json:"hypervisors"`
	Summary     UtilizationSummary      `json:"summary"`
}

// ServerAnalysis correlates one server with its flavor allocation and
// hypervisor placement.
type ServerAnalysis struct {
	ServerInfo struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Status  string `json:"status"`
		Host    string `json:"host,omitempty"`
		Created string `json:"created,omitempty"`
	} `json:"server_info"`
	ResourceAllocation *ServerResourceAllocation `json:"resource_allocation"`
	HostAnalysis       *ServerHostAnalysis       `json:"host_analysis"`
	HealthStatus       HealthStatus              `json:"health_status"`
}

type ServerResourceAllocation struct {
	VCPUs       int64 `json:"vcpus"`
	RAMMB       int64 `json:"ram_mb"`
	DiskGB      int64 `json:"disk_gb"`
	EphemeralGB int64 `json:"ephemeral_gb"`
}

type ServerHostAnalysis struct {
	Hypervisor       string `json:"hypervisor"`
	HypervisorStatus string `json:"hypervisor_status"`
	HypervisorState  string `json:"hypervisor_state"`
	TotalVCPUs       int64  `json:"total_vcpus"`
	UsedVCPUs        int64  `json:"used_vcpus"`
	TotalMemoryMB    int64  `json:"total_memory_mb"`
	UsedMemoryMB     int64  `json:"used_memory_mb"`
	RunningVMs       int    `json:"running_vms"`
}
