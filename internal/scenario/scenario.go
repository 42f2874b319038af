// Package scenario ships the real-world network design scenarios used
// by the study module. The built-in catalog is embedded; extra
// scenarios can be loaded from a directory of YAML files.
package scenario

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/ace-iot/subnet-academy/internal/bbmd"
	"github.com/ace-iot/subnet-academy/internal/ipv4"
)

//go:embed scenarios.yaml
var builtinYAML []byte

// SubnetSpec is one subnet in a scenario as written in YAML.
type SubnetSpec struct {
	Name string `json:"name"`
	CIDR string `json:"cidr"`
	Note string `json:"note,omitempty"`
}

// BBMDSpec is a BBMD placement as written in YAML.
type BBMDSpec struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Subnet  string `json:"subnet"`
}

// Scenario is one design exercise: the situation, the subnet plan, the
// BBMD placements, and a verification checklist.
type Scenario struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Summary   string       `json:"summary"`
	Subnets   []SubnetSpec `json:"subnets"`
	BBMDs     []BBMDSpec   `json:"bbmds,omitempty"`
	Checklist []string     `json:"checklist,omitempty"`
}

// Load parses and validates the embedded catalog.
func Load() ([]Scenario, error) {
	return parse(builtinYAML, "builtin")
}

// LoadDir loads user-supplied scenario files next to the builtins.
// Missing directory is not an error.
func LoadDir(dir string) ([]Scenario, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s directory: %w", dir, err)
	}
	var scenarios []Scenario
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}
		bytes, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name(), err)
		}
		loaded, err := parse(bytes, f.Name())
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, loaded...)
	}
	return scenarios, nil
}

func parse(data []byte, source string) ([]Scenario, error) {
	var scenarios []Scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", source, err)
	}
	for i := range scenarios {
		if err := scenarios[i].validate(); err != nil {
			return nil, fmt.Errorf("%s: scenario %q: %w", source, scenarios[i].ID, err)
		}
	}
	return scenarios, nil
}

// validate resolves every CIDR and address through the ipv4 core and
// enforces the design rules the scenarios teach.
func (s *Scenario) validate() error {
	if s.ID == "" || s.Name == "" {
		return fmt.Errorf("id and name are required")
	}
	if len(s.Subnets) == 0 {
		return fmt.Errorf("no subnets")
	}

	subnets := make(map[string]ipv4.Subnet, len(s.Subnets))
	resolved := make([]ipv4.Subnet, 0, len(s.Subnets))
	for _, spec := range s.Subnets {
		subnet, err := ipv4.ParseSubnet(spec.CIDR)
		if err != nil {
			return fmt.Errorf("subnet %q: %w", spec.Name, err)
		}
		for i, other := range resolved {
			if subnet.Overlaps(other) {
				return fmt.Errorf("subnet %q (%s) overlaps %q (%s)", spec.Name, subnet, s.Subnets[i].Name, other)
			}
		}
		subnets[spec.CIDR] = subnet
		resolved = append(resolved, subnet)
	}

	seen := make(map[ipv4.Subnet]string)
	for _, spec := range s.BBMDs {
		subnet, ok := subnets[spec.Subnet]
		if !ok {
			return fmt.Errorf("BBMD %q references unknown subnet %q", spec.Name, spec.Subnet)
		}
		addr, err := ipv4.ParseAddr(spec.Address)
		if err != nil {
			return fmt.Errorf("BBMD %q: %w", spec.Name, err)
		}
		if !subnet.Contains(addr) {
			return fmt.Errorf("BBMD %q address %s is not inside %s", spec.Name, addr, subnet)
		}
		if prev, dup := seen[subnet]; dup {
			return fmt.Errorf("subnet %s has two BBMDs (%s, %s)", subnet, prev, spec.Name)
		}
		seen[subnet] = spec.Name
	}
	return nil
}

// ResolvedSubnets returns the scenario's subnets as ipv4 values, in
// declaration order.
func (s *Scenario) ResolvedSubnets() []ipv4.Subnet {
	result := make([]ipv4.Subnet, 0, len(s.Subnets))
	for _, spec := range s.Subnets {
		result = append(result, ipv4.MustParseSubnet(spec.CIDR))
	}
	return result
}

// Plan converts the scenario's BBMD placements into a plan with a full
// symmetric BDT mesh, which is the recommended configuration for every
// scenario that uses BBMDs at all.
func (s *Scenario) Plan() *bbmd.Plan {
	plan := &bbmd.Plan{}
	for _, spec := range s.BBMDs {
		plan.Peers = append(plan.Peers, bbmd.Peer{
			Name:   spec.Name,
			Addr:   ipv4.MustParseAddr(spec.Address),
			Subnet: ipv4.MustParseSubnet(spec.Subnet),
		})
	}
	for i := range plan.Peers {
		for j := range plan.Peers {
			if i != j {
				plan.Peers[i].BDT = append(plan.Peers[i].BDT, plan.Peers[j].Name)
			}
		}
	}
	return plan
}

// ByID returns the scenario with the given ID, or nil.
func ByID(scenarios []Scenario, id string) *Scenario {
	for i := range scenarios {
		if scenarios[i].ID == id {
			return &scenarios[i]
		}
	}
	return nil
}
