package cli

import (
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"
)

const (
	ServerKind     = "server"
	HypervisorKind = "hypervisor"
	FlavorKind     = "flavor"
	ImageKind      = "image"
	VolumeKind     = "volume"
	VolumeTypeKind = "volume-type"
	NetworkKind    = "network"
	SubnetKind     = "subnet"
	RouterKind     = "router"
)

// pluralKinds maps a kind to its route segment, which doubles as the item
// key in the list reply.
var pluralKinds = map[string]string{
	ServerKind:     "servers",
	HypervisorKind: "hypervisors",
	FlavorKind:     "flavors",
	ImageKind:      "images",
	VolumeKind:     "volumes",
	VolumeTypeKind: "volume-types",
	NetworkKind:    "networks",
	SubnetKind:     "subnets",
	RouterKind:     "routers",
}

// detailKinds are the kinds with a GET-by-id endpoint.
var detailKinds = map[string]struct{}{
	ServerKind: {},
	FlavorKind: {},
	ImageKind:  {},
}

func parseAndValidateKindId(arg string) (string, string, error) {
	kind, id, _ := strings.Cut(arg, "/")
	kind = singular(kind)
	if _, ok := pluralKinds[kind]; !ok {
		return "", "", fmt.Errorf("invalid resource kind: %s", kind)
	}
	if id != "" {
		if _, ok := detailKinds[kind]; !ok {
			return "", "", fmt.Errorf("resource kind %s has no detail lookup", kind)
		}
	}
	return kind, id, nil
}

func singular(kind string) string {
	for singular, plural := range pluralKinds {
		if kind == plural {
			return singular
		}
	}
	return kind
}

func plural(kind string) string {
	return pluralKinds[kind]
}

// itemsKey is the JSON field holding the collection in a list reply.
func itemsKey(kind string) string {
	return strings.ReplaceAll(plural(kind), "-", "_")
}

func printBody(body []byte, output string) error {
	if output == yamlFormat {
		converted, err := yaml.JSONToYAML(body)
		if err != nil {
			return fmt.Errorf("converting to yaml: %w", err)
		}
		fmt.Printf("%s", string(converted))
		return nil
	}
	fmt.Printf("%s\n", string(body))
	return nil
}
