package handler

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"clinic-console-api/internal/action"
)

// Envelope is how an outcome travels back to the caller. Exactly one of
// Payload and Error is set, except for outcomes that carry no data.
type Envelope struct {
	RequestID string `json:"requestId"`
	Type      string `json:"type"`
	Payload   any    `json:"payload,omitempty"`
	Error     string `json:"error,omitempty"`
}

type loginPayload struct {
	User  any    `json:"user"`
	Token string `json:"token"`
}

type deletePayload struct {
	ID int `json:"id"`
}

func NewEnvelope(out action.Outcome) Envelope {
	env := Envelope{RequestID: out.RequestID(), Type: out.Type()}
	if f, ok := out.(action.Failure); ok {
		env.Error = f.Message()
		return env
	}
	switch out := out.(type) {
	case action.LoginSuccess:
		env.Payload = loginPayload{User: out.Session.User, Token: out.Session.Token}
	case action.LogoutSuccess:
	case action.ValidateTokenSuccess:
		env.Payload = out.User
	case action.FetchAppointmentsSuccess:
		env.Payload = out.Appointments
	case action.FetchAppointmentSuccess:
		env.Payload = out.Appointment
	case action.CreateAppointmentSuccess:
		env.Payload = out.Appointment
	case action.UpdateAppointmentSuccess:
		env.Payload = out.Appointment
	case action.DeleteAppointmentSuccess:
		env.Payload = deletePayload{ID: out.ID}
	case action.GenerateInvoiceSuccess:
		env.Payload = out.Invoice
	case action.GetServiceCostSuccess:
		env.Payload = out.ServiceCost
	default:
		panic(fmt.Sprintf("handler: no envelope for %T", out))
	}
	return env
}

// run dispatches in, waits for its outcome and wraps it.
func (h *Handler) run(ctx context.Context, in action.Intent) (*structpb.Struct, error) {
	out, err := h.orc.Do(ctx, in)
	if err != nil {
		h.log.Info("caller stopped waiting", zap.String("action", in.Type()), zap.Error(err))
		return nil, waitErr(err)
	}
	return encode(NewEnvelope(out))
}
