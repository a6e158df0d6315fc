// Package v1alpha1 holds the typed documents exposed by the advisor API:
// normalized resource records and the derived report/health documents.
package v1alpha1

// Server is the normalized view of a compute instance. List operations leave
// the detail-only fields (Fault, Addresses, Metadata, Updated) empty.
type Server struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Status     string            `json:"status"`
	Host       string            `json:"host,omitempty"`
	Created    string            `json:"created,omitempty"`
	Updated    string            `json:"updated,omitempty"`
	FlavorID   string            `json:"flavor,omitempty"`
	ImageID    string            `json:"image,omitempty"`
	PowerState int               `json:"power_state"`
	TaskState  string            `json:"task_state,omitempty"`
	Fault      map[string]any    `json:"fault,omitempty"`
	Addresses  map[string]any    `json:"addresses,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Hypervisor tracks a compute host with its total and used capacity.
type Hypervisor struct {
	ID                string `json:"id"`
	Hostname          string `json:"hypervisor_hostname"`
	State             string `json:"state"`
	Status            string `json:"status"`
	VCPUs             int64  `json:"vcpus"`
	VCPUsUsed         int64  `json:"vcpus_used"`
	MemoryMB          int64  `json:"memory_mb"`
	MemoryMBUsed      int64  `json:"memory_mb_used"`
	LocalGB           int64  `json:"local_gb"`
	LocalGBUsed       int64  `json:"local_gb_used"`
	FreeRAMMB         int64  `json:"free_ram_mb"`
	FreeDiskGB        int64  `json:"free_disk_gb"`
	RunningVMs        int    `json:"running_vms"`
	HypervisorType    string `json:"hypervisor_type,omitempty"`
	HypervisorVersion int64  `json:"hypervisor_version,omitempty"`
}

// Flavor is a compute resource template. Swap defaults to 0 when the backing
// service reports it as an empty string.
type Flavor struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	VCPUs       int64             `json:"vcpus"`
	RAMMB       int64             `json:"ram"`
	DiskGB      int64             `json:"disk"`
	EphemeralGB int64             `json:"ephemeral"`
	SwapMB      int64             `json:"swap"`
	IsPublic    bool              `json:"is_public"`
	ExtraSpecs  map[string]string `json:"extra_specs,omitempty"`
}

type Image struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Status    string            `json:"status"`
	Created   string            `json:"created,omitempty"`
	Updated   string            `json:"updated,omitempty"`
	SizeBytes int64             `json:"size"`
	MinDiskGB int64             `json:"min_disk"`
	MinRAMMB  int64             `json:"min_ram"`
	Progress  int               `json:"progress"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type VolumeAttachment struct {
	ServerID string `json:"server_id"`
	Device   string `json:"device,omitempty"`
}

type Volume struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Status           string             `json:"status"`
	SizeGB           int64              `json:"size"`
	VolumeType       string             `json:"volume_type,omitempty"`
	CreatedAt        string             `json:"created_at,omitempty"`
	Attachments      []VolumeAttachment `json:"attachments"`
	AvailabilityZone string             `json:"availability_zone,omitempty"`
}

type VolumeType struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	IsPublic    bool              `json:"is_public"`
	ExtraSpecs  map[string]string `json:"extra_specs,omitempty"`
}

type Network struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Status              string   `json:"status"`
	AdminStateUp        bool     `json:"admin_state_up"`
	Shared              bool     `json:"shared"`
	External            bool     `json:"external"`
	ProviderNetworkType string   `json:"provider_network_type,omitempty"`
	SubnetIDs           []string `json:"subnets"`
}

type AllocationPool struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Subnet struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	NetworkID       string           `json:"network_id"`
	CIDR            string           `json:"cidr"`
	IPVersion       int              `json:"ip_version"`
	GatewayIP       string           `json:"gateway_ip,omitempty"`
	EnableDHCP      bool             `json:"enable_dhcp"`
	AllocationPools []AllocationPool `json:"allocation_pools"`
}

// RouterExternalGateway is the reduced view of a router's gateway config.
type RouterExternalGateway struct {
	NetworkID  string `json:"network_id"`
	EnableSNAT bool   `json:"enable_snat"`
}

type Router struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Status          string                 `json:"status"`
	AdminStateUp    bool                   `json:"admin_state_up"`
	ExternalGateway *RouterExternalGateway `json:"external_gateway_info,omitempty"`
	HA              bool                   `json:"ha"`
	Distributed     bool                   `json:"distributed"`
}
