package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"clinic-console-api/internal/action"
	"clinic-console-api/internal/middleware"
	"clinic-console-api/internal/model"
)

func (h *Handler) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var c model.Credentials
	if err := decode(req, &c); err != nil {
		return nil, err
	}
	return h.run(ctx, action.LoginRequest{Credentials: c})
}

func (h *Handler) Logout(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return h.run(ctx, action.LogoutRequest{})
}

type validateRequest struct {
	Token string `json:"token"`
}

// ValidateToken checks the token in the body, or the bearer token when
// the body has none. A token the console does not hold yet becomes its
// token first, so a successful check leaves user and token together.
func (h *Handler) ValidateToken(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var r validateRequest
	if err := decode(req, &r); err != nil {
		return nil, err
	}
	if r.Token == "" {
		r.Token, _ = middleware.Token(ctx)
	}
	if r.Token != h.store.Snapshot().Auth.Token {
		h.store.Dispatch(action.SetToken{Token: r.Token})
	}
	return h.run(ctx, action.ValidateTokenRequest{Token: r.Token})
}

type clearErrorRequest struct {
	Slice string `json:"slice"`
}

// ClearError resets the error of one slice: auth, appointments or
// billing. The reply is that slice.
func (h *Handler) ClearError(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var r clearErrorRequest
	if err := decode(req, &r); err != nil {
		return nil, err
	}
	switch r.Slice {
	case "auth":
		return encode(h.store.Dispatch(action.ClearAuthError{}).Auth)
	case "appointments":
		return encode(h.store.Dispatch(action.ClearAppointmentsError{}).Appointments)
	case "billing":
		return encode(h.store.Dispatch(action.ClearBillingError{}).Billing)
	}
	return nil, status.Errorf(codes.InvalidArgument, "slice must be auth, appointments or billing, got %q", r.Slice)
}
