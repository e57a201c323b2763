// Package handler exposes the console over gRPC. Requests and replies are
// google.protobuf.Struct values shaped like the JSON the browser console
// exchanges, so the service needs no generated stubs.
package handler

import (
	"go.uber.org/zap"

	"clinic-console-api/internal/orchestrator"
	"clinic-console-api/internal/state"
)

type Handler struct {
	orc   *orchestrator.Orchestrator
	store *state.Store
	log   *zap.Logger
}

func New(orc *orchestrator.Orchestrator, store *state.Store, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{orc: orc, store: store, log: log.Named("handler")}
}
