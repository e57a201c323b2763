package store

import "clinic-console-api/internal/model"

// Catalog is read-only reference data: service prices and the clinic
// details stamped on invoices.
type Catalog struct {
	costs  []model.ServiceCost
	clinic model.ClinicInfo
}

func NewCatalog(costs []model.ServiceCost, clinic model.ClinicInfo) *Catalog {
	c := make([]model.ServiceCost, len(costs))
	copy(c, costs)
	return &Catalog{costs: c, clinic: clinic}
}

// CostByService matches the service name exactly.
func (c *Catalog) CostByService(name string) (model.ServiceCost, bool) {
	for _, sc := range c.costs {
		if sc.ServiceName == name {
			return sc, true
		}
	}
	return model.ServiceCost{}, false
}

func (c *Catalog) ServiceCosts() []model.ServiceCost {
	out := make([]model.ServiceCost, len(c.costs))
	copy(out, c.costs)
	return out
}

func (c *Catalog) ClinicInfo() model.ClinicInfo { return c.clinic }
