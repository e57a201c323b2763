package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"clinic-console-api/internal/state"
)

const watchBuffer = 16

func (h *Handler) GetState(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(h.store.Snapshot())
}

func (h *Handler) GetDashboard(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(state.BuildDashboard(h.store.Snapshot()))
}

// WatchState sends the current state, then a snapshot after every
// transition until the caller goes away. A slow reader misses
// intermediate snapshots but always sees a later one.
func (h *Handler) WatchState(_ *structpb.Struct, stream grpc.ServerStream) error {
	ch, cancel := h.store.Subscribe(watchBuffer)
	defer cancel()

	if err := sendState(stream, h.store.Snapshot()); err != nil {
		return err
	}
	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-ch:
			if !ok {
				return nil
			}
			if err := sendState(stream, s); err != nil {
				return err
			}
		}
	}
}

func sendState(stream grpc.ServerStream, s state.State) error {
	msg, err := encode(s)
	if err != nil {
		return err
	}
	return stream.SendMsg(msg)
}
