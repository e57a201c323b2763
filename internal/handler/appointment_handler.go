package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"clinic-console-api/internal/action"
	"clinic-console-api/internal/model"
)

func (h *Handler) ListAppointments(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return h.run(ctx, action.FetchAppointmentsRequest{})
}

func (h *Handler) GetAppointment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}
	return h.run(ctx, action.FetchAppointmentRequest{ID: id})
}

func (h *Handler) CreateAppointment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var f model.AppointmentFields
	if err := decode(req, &f); err != nil {
		return nil, err
	}
	if err := check(f); err != nil {
		return nil, err
	}
	return h.run(ctx, action.CreateAppointmentRequest{Fields: f})
}

type updateRequest struct {
	ID          int                    `json:"id"`
	Appointment model.AppointmentPatch `json:"appointment"`
}

func (h *Handler) UpdateAppointment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}
	var r updateRequest
	if err := decode(req, &r); err != nil {
		return nil, err
	}
	if err := check(r.Appointment); err != nil {
		return nil, err
	}
	return h.run(ctx, action.UpdateAppointmentRequest{ID: id, Patch: r.Appointment})
}

func (h *Handler) DeleteAppointment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}
	return h.run(ctx, action.DeleteAppointmentRequest{ID: id})
}

func (h *Handler) SetFilters(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var f model.AppointmentFilters
	if err := decode(req, &f); err != nil {
		return nil, err
	}
	s := h.store.Dispatch(action.SetFilters{Filters: f})
	return encode(s.Appointments)
}

func (h *Handler) ClearFilters(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	s := h.store.Dispatch(action.ClearFilters{})
	return encode(s.Appointments)
}

func (h *Handler) ClearSelectedAppointment(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	s := h.store.Dispatch(action.ClearSelectedAppointment{})
	return encode(s.Appointments)
}
