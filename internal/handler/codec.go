package handler

import (
	"context"
	"errors"

	"github.com/goccy/go-json"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"clinic-console-api/internal/model"
)

// decode copies a request Struct into v by way of its JSON form.
func decode(req *structpb.Struct, v any) error {
	b, err := json.Marshal(req.AsMap())
	if err != nil {
		return status.Error(codes.InvalidArgument, "malformed request")
	}
	if err := json.Unmarshal(b, v); err != nil {
		return status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
	}
	return nil
}

// encode turns any JSON-shaped value into a reply Struct.
func encode(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode reply")
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Error(codes.Internal, "encode reply")
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode reply")
	}
	return s, nil
}

func check(v any) error {
	if err := model.Validate(v); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

type idRequest struct {
	ID *int `json:"id"`
}

// decodeID requires an id to be present. Any integer goes through; one
// that names no appointment ends as a not-found outcome.
func decodeID(req *structpb.Struct) (int, error) {
	var r idRequest
	if err := decode(req, &r); err != nil {
		return 0, err
	}
	if r.ID == nil {
		return 0, status.Error(codes.InvalidArgument, "id is required")
	}
	return *r.ID, nil
}

// waitErr maps an abandoned wait to its gRPC status.
func waitErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	return status.Error(codes.Internal, err.Error())
}
