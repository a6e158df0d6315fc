// Package inventory turns raw resource listings into normalized records and
// derives capacity metrics, health verdicts and recommendations from them.
package inventory

import (
	"fmt"
	"strconv"

	api "github.com/clouddiag/openstack-advisor/api/v1alpha1"
)

// StatusUnknown is the bucket for resources whose raw representation carries
// no status field.
const StatusUnknown = "unknown"

// NormalizeServer maps a raw nova server object to its canonical record.
// Vendor-prefixed keys are flattened, nested flavor/image references reduce to
// their id, and a missing status becomes "unknown". Sparse input never fails.
func NormalizeServer(raw map[string]any) api.Server {
	return api.Server{
		ID:         asString(raw["id"]),
		Name:       asString(raw["name"]),
		Status:     statusOrUnknown(raw["status"]),
		Host:       asString(raw["OS-EXT-SRV-ATTR:host"]),
		Created:    asString(raw["created"]),
		Updated:    asString(raw["updated"]),
		FlavorID:   refID(raw["flavor"]),
		ImageID:    refID(raw["image"]),
		PowerState: int(asInt64(raw["OS-EXT-STS:power_state"])),
		TaskState:  asString(raw["OS-EXT-STS:task_state"]),
		Fault:      asMap(raw["fault"]),
		Addresses:  asMap(raw["addresses"]),
		Metadata:   asStringMap(raw["metadata"]),
	}
}

func NormalizeHypervisor(raw map[string]any) api.Hypervisor {
	return api.Hypervisor{
		ID:                asString(raw["id"]),
		Hostname:          asString(raw["hypervisor_hostname"]),
		State:             asString(raw["state"]),
		Status:            statusOrUnknown(raw["status"]),
		VCPUs:             asInt64(raw["vcpus"]),
		VCPUsUsed:         asInt64(raw["vcpus_used"]),
		MemoryMB:          asInt64(raw["memory_mb"]),
		MemoryMBUsed:      asInt64(raw["memory_mb_used"]),
		LocalGB:           asInt64(raw["local_gb"]),
		LocalGBUsed:       asInt64(raw["local_gb_used"]),
		FreeRAMMB:         asInt64(raw["free_ram_mb"]),
		FreeDiskGB:        asInt64(raw["free_disk_gb"]),
		RunningVMs:        int(asInt64(raw["running_vms"])),
		HypervisorType:    asString(raw["hypervisor_type"]),
		HypervisorVersion: asInt64(raw["hypervisor_version"]),
	}
}

// NormalizeFlavor maps a raw flavor. Nova reports swap as an empty string when
// unset, which normalizes to 0.
func NormalizeFlavor(raw map[string]any) api.Flavor {
	return api.Flavor{
		ID:          asString(raw["id"]),
		Name:        asString(raw["name"]),
		VCPUs:       asInt64(raw["vcpus"]),
		RAMMB:       asInt64(raw["ram"]),
		DiskGB:      asInt64(raw["disk"]),
		EphemeralGB: asInt64(raw["OS-FLV-EXT-DATA:ephemeral"]),
		SwapMB:      asInt64(raw["swap"]),
		IsPublic:    asBool(raw["os-flavor-access:is_public"]),
		ExtraSpecs:  asStringMap(raw["OS-FLV-WITH-EXT-SPECS:extra_specs"]),
	}
}

func NormalizeImage(raw map[string]any) api.Image {
	return api.Image{
		ID:        asString(raw["id"]),
		Name:      asString(raw["name"]),
		Status:    statusOrUnknown(raw["status"]),
		Created:   asString(raw["created"]),
		Updated:   asString(raw["updated"]),
		SizeBytes: asInt64(raw["size"]),
		MinDiskGB: asInt64(raw["minDisk"]),
		MinRAMMB:  asInt64(raw["minRam"]),
		Progress:  int(asInt64(raw["progress"])),
		Metadata:  asStringMap(raw["metadata"]),
	}
}

func NormalizeVolume(raw map[string]any) api.Volume {
	attachments := []api.VolumeAttachment{}
	if rawAttachments, ok := raw["attachments"].([]any); ok {
		for _, a := range rawAttachments {
			attachment, ok := a.(map[string]any)
			if !ok {
				continue
			}
			attachments = append(attachments, api.VolumeAttachment{
				ServerID: asString(attachment["server_id"]),
				Device:   asString(attachment["device"]),
			})
		}
	}
	return api.Volume{
		ID:               asString(raw["id"]),
		Name:             asString(raw["name"]),
		Status:           statusOrUnknown(raw["status"]),
		SizeGB:           asInt64(raw["size"]),
		VolumeType:       asString(raw["volume_type"]),
		CreatedAt:        asString(raw["created_at"]),
		Attachments:      attachments,
		AvailabilityZone: asString(raw["availability_zone"]),
	}
}

func NormalizeVolumeType(raw map[string]any) api.VolumeType {
	return api.VolumeType{
		ID:          asString(raw["id"]),
		Name:        asString(raw["name"]),
		Description: asString(raw["description"]),
		IsPublic:    asBool(raw["is_public"]),
		ExtraSpecs:  asStringMap(raw["extra_specs"]),
	}
}

func NormalizeNetwork(raw map[string]any) api.Network {
	subnets := []string{}
	if rawSubnets, ok := raw["subnets"].([]any); ok {
		for _, s := range rawSubnets {
			subnets = append(subnets, asString(s))
		}
	}
	return api.Network{
		ID:                  asString(raw["id"]),
		Name:                asString(raw["name"]),
		Status:              statusOrUnknown(raw["status"]),
		AdminStateUp:        asBool(raw["admin_state_up"]),
		Shared:              asBool(raw["shared"]),
		External:            asBool(raw["router:external"]),
		ProviderNetworkType: asString(raw["provider:network_type"]),
		SubnetIDs:           subnets,
	}
}

func NormalizeSubnet(raw map[string]any) api.Subnet {
	pools := []api.AllocationPool{}
	if rawPools, ok := raw["allocation_pools"].([]any); ok {
		for _, p := range rawPools {
			pool, ok := p.(map[string]any)
			if !ok {
				continue
			}
			pools = append(pools, api.AllocationPool{
				Start: asString(pool["start"]),
				End:   asString(pool["end"]),
			})
		}
	}
	return api.Subnet{
		ID:              asString(raw["id"]),
		Name:            asString(raw["name"]),
		NetworkID:       asString(raw["network_id"]),
		CIDR:            asString(raw["cidr"]),
		IPVersion:       int(asInt64(raw["ip_version"])),
		GatewayIP:       asString(raw["gateway_ip"]),
		EnableDHCP:      asBool(raw["enable_dhcp"]),
		AllocationPools: pools,
	}
}

func NormalizeRouter(raw map[string]any) api.Router {
	var gateway *api.RouterExternalGateway
	if gw, ok := raw["external_gateway_info"].(map[string]any); ok {
		gateway = &api.RouterExternalGateway{
			NetworkID:  asString(gw["network_id"]),
			EnableSNAT: asBool(gw["enable_snat"]),
		}
	}
	return api.Router{
		ID:              asString(raw["id"]),
		Name:            asString(raw["name"]),
		Status:          statusOrUnknown(raw["status"]),
		AdminStateUp:    asBool(raw["admin_state_up"]),
		ExternalGateway: gateway,
		HA:              asBool(raw["ha"]),
		Distributed:     asBool(raw["distributed"]),
	}
}

func statusOrUnknown(v any) string {
	if s := asString(v); s != "" {
		return s
	}
	return StatusUnknown
}

// refID reduces a nested resource reference to its identifier. Nova returns
// flavor/image either as {"id": ...} or, for boot-from-volume servers, as an
// empty string.
func refID(v any) string {
	switch ref := v.(type) {
	case map[string]any:
		return asString(ref["id"])
	case string:
		return ref
	default:
		return ""
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// numeric ids decoded from JSON
		return strconv.FormatInt(int64(s), 10)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	case string:
		// cinder/nova report some numeric fields ("swap") as strings
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func asBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func asMap(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m
}

func asStringMap(v any) map[string]string {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	m := make(map[string]string, len(raw))
	for k, val := range raw {
		switch s := val.(type) {
		case string:
			m[k] = s
		default:
			m[k] = fmt.Sprintf("%v", s)
		}
	}
	return m
}
