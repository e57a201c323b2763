// Package state holds the console's shared state. Dispatch is the only
// way to change it and every transition is applied whole under one lock.
package state

import (
	"slices"

	"clinic-console-api/internal/model"
)

type Auth struct {
	User            *model.User `json:"user"`
	Token           string      `json:"token"`
	IsAuthenticated bool        `json:"isAuthenticated"`
	IsLoading       bool        `json:"isLoading"`
	Error           string      `json:"error"`
}

type Appointments struct {
	Items     []model.Appointment      `json:"appointments"`
	Selected  *model.Appointment       `json:"selectedAppointment"`
	Filters   model.AppointmentFilters `json:"filters"`
	IsLoading bool                     `json:"isLoading"`
	Error     string                   `json:"error"`
}

type Billing struct {
	CurrentInvoice *model.Invoice      `json:"currentInvoice"`
	Invoices       []model.Invoice     `json:"invoices"`
	ServicesCosts  []model.ServiceCost `json:"servicesCosts"`
	ClinicInfo     model.ClinicInfo    `json:"clinicInfo"`
	IsLoading      bool                `json:"isLoading"`
	Error          string              `json:"error"`
}

type State struct {
	Auth         Auth         `json:"auth"`
	Appointments Appointments `json:"appointments"`
	Billing      Billing      `json:"billing"`
}

// Initial is the state of a fresh console. Billing starts out with the
// price list and clinic details already loaded.
func Initial(costs []model.ServiceCost, clinic model.ClinicInfo) State {
	return State{
		Appointments: Appointments{Items: []model.Appointment{}},
		Billing: Billing{
			Invoices:      []model.Invoice{},
			ServicesCosts: slices.Clone(costs),
			ClinicInfo:    clinic,
		},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	if s.Auth.User != nil {
		u := *s.Auth.User
		out.Auth.User = &u
	}
	out.Appointments.Items = slices.Clone(s.Appointments.Items)
	if s.Appointments.Selected != nil {
		a := *s.Appointments.Selected
		out.Appointments.Selected = &a
	}
	out.Billing.Invoices = slices.Clone(s.Billing.Invoices)
	for i := range out.Billing.Invoices {
		out.Billing.Invoices[i] = cloneInvoice(out.Billing.Invoices[i])
	}
	if s.Billing.CurrentInvoice != nil {
		inv := cloneInvoice(*s.Billing.CurrentInvoice)
		out.Billing.CurrentInvoice = &inv
	}
	out.Billing.ServicesCosts = slices.Clone(s.Billing.ServicesCosts)
	return out
}

func cloneInvoice(inv model.Invoice) model.Invoice {
	inv.ServicesCosts = slices.Clone(inv.ServicesCosts)
	return inv
}
