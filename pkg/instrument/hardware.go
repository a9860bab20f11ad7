package instrument

import "github.com/chazu/trapbox/pkg/panel"

// glueBlock builds a plain rectangular neck or tail block, block thickness
// wide and box depth tall.
func glueBlock(ptype panel.Type, name, label string, thickness, depth float64) (panel.Panel, error) {
	return plainRect(ptype, name, label, thickness, depth)
}
