package action

import "clinic-console-api/internal/model"

type GenerateInvoiceRequest struct {
	intent
	Appointment model.Appointment
}

type GenerateInvoiceSuccess struct {
	success
	Meta
	Invoice model.Invoice
}

type GenerateInvoiceFailure struct {
	failure
	Meta
	Err string
}

type GetServiceCostRequest struct {
	intent
	ServiceName string
}

type GetServiceCostSuccess struct {
	success
	Meta
	ServiceCost model.ServiceCost
}

type GetServiceCostFailure struct {
	failure
	Meta
	Err string
}

type UpdateInvoiceStatus struct {
	plain
	InvoiceID string
	Status    model.InvoiceStatus
}

type ClearCurrentInvoice struct{ plain }

type ClearBillingError struct{ plain }

func (GenerateInvoiceRequest) Type() string { return "billing/generateInvoiceRequest" }
func (GenerateInvoiceSuccess) Type() string { return "billing/generateInvoiceSuccess" }
func (GenerateInvoiceFailure) Type() string { return "billing/generateInvoiceFailure" }
func (GetServiceCostRequest) Type() string  { return "billing/getServiceCostRequest" }
func (GetServiceCostSuccess) Type() string  { return "billing/getServiceCostSuccess" }
func (GetServiceCostFailure) Type() string  { return "billing/getServiceCostFailure" }
func (UpdateInvoiceStatus) Type() string    { return "billing/updateInvoiceStatus" }
func (ClearCurrentInvoice) Type() string    { return "billing/clearCurrentInvoice" }
func (ClearBillingError) Type() string      { return "billing/clearError" }

func (a GenerateInvoiceFailure) Message() string { return a.Err }
func (a GetServiceCostFailure) Message() string  { return a.Err }
