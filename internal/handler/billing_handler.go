package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"clinic-console-api/internal/action"
	"clinic-console-api/internal/model"
)

type invoiceRequest struct {
	Appointment   *model.Appointment `json:"appointment"`
	AppointmentID *int               `json:"appointmentId"`
}

// GenerateInvoice bills the appointment in the body. Given only an
// appointmentId it bills the copy held in the console's list.
func (h *Handler) GenerateInvoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var r invoiceRequest
	if err := decode(req, &r); err != nil {
		return nil, err
	}
	appt, err := h.invoiceTarget(r)
	if err != nil {
		return nil, err
	}
	return h.run(ctx, action.GenerateInvoiceRequest{Appointment: appt})
}

func (h *Handler) invoiceTarget(r invoiceRequest) (model.Appointment, error) {
	if r.Appointment != nil {
		return *r.Appointment, nil
	}
	if r.AppointmentID == nil {
		return model.Appointment{}, status.Error(codes.InvalidArgument, "appointment or appointmentId is required")
	}
	for _, a := range h.store.Snapshot().Appointments.Items {
		if a.ID == *r.AppointmentID {
			return a, nil
		}
	}
	return model.Appointment{}, status.Error(codes.NotFound, "Appointment not found")
}

type serviceCostRequest struct {
	ServiceName string `json:"serviceName"`
}

func (h *Handler) GetServiceCost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var r serviceCostRequest
	if err := decode(req, &r); err != nil {
		return nil, err
	}
	return h.run(ctx, action.GetServiceCostRequest{ServiceName: r.ServiceName})
}

func (h *Handler) UpdateInvoiceStatus(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var c model.InvoiceStatusChange
	if err := decode(req, &c); err != nil {
		return nil, err
	}
	if err := check(c); err != nil {
		return nil, err
	}
	s := h.store.Dispatch(action.UpdateInvoiceStatus{InvoiceID: c.InvoiceID, Status: c.Status})
	return encode(s.Billing)
}

func (h *Handler) ClearCurrentInvoice(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	s := h.store.Dispatch(action.ClearCurrentInvoice{})
	return encode(s.Billing)
}
