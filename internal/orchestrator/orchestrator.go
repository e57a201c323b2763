// Package orchestrator turns intents into calls against the clinic
// backend. Each dispatched intent gets one goroutine and produces exactly
// one outcome, which is applied to the state store before it is
// delivered to whoever is waiting.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"clinic-console-api/internal/action"
	"clinic-console-api/internal/model"
	"clinic-console-api/internal/session"
	"clinic-console-api/internal/state"
)

// API is the backend the orchestrator calls. mockapi.Service satisfies it.
type API interface {
	Login(ctx context.Context, c model.Credentials) (model.Session, error)
	Logout(ctx context.Context) error
	ValidateToken(ctx context.Context, token string) (model.User, error)
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	GetAppointment(ctx context.Context, id int) (model.Appointment, error)
	CreateAppointment(ctx context.Context, f model.AppointmentFields) (model.Appointment, error)
	UpdateAppointment(ctx context.Context, id int, p model.AppointmentPatch) (model.Appointment, error)
	DeleteAppointment(ctx context.Context, id int) error
	ServiceCost(ctx context.Context, name string) (model.ServiceCost, error)
	GenerateInvoice(ctx context.Context, a model.Appointment) (model.Invoice, error)
}

const (
	FallbackLogin             = "Login failed"
	FallbackFetchAppointments = "Failed to fetch appointments"
	FallbackFetchAppointment  = "Failed to fetch appointment"
	FallbackCreateAppointment = "Failed to create appointment"
	FallbackUpdateAppointment = "Failed to update appointment"
	FallbackDeleteAppointment = "Failed to delete appointment"
	FallbackGenerateInvoice   = "Failed to generate invoice"
	FallbackServiceCost       = "Failed to get service cost"
)

const storageTimeout = 5 * time.Second

type Orchestrator struct {
	api      API
	store    *state.Store
	sessions session.Storage
	log      *zap.Logger

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(api API, store *state.Store, sessions session.Storage, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	base, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		api:      api,
		store:    store,
		sessions: sessions,
		log:      log.Named("orchestrator"),
		base:     base,
		cancel:   cancel,
	}
}

// Pending is an intent whose outcome has not necessarily arrived yet.
type Pending struct {
	id      string
	done    chan struct{}
	outcome action.Outcome
}

func (p *Pending) RequestID() string { return p.id }

// Wait blocks until the outcome arrives or ctx ends. Giving up on the
// wait leaves the effect running.
func (p *Pending) Wait(ctx context.Context) (action.Outcome, error) {
	select {
	case <-p.done:
		return p.outcome, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Dispatch applies in to the store and starts its effect.
func (o *Orchestrator) Dispatch(in action.Intent) *Pending {
	meta := action.NewMeta()
	p := &Pending{id: meta.ID, done: make(chan struct{})}

	o.store.Dispatch(in)
	o.log.Debug("intent", zap.String("action", in.Type()), zap.String("request_id", meta.ID))

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		out := o.run(o.base, meta, in)
		o.store.Dispatch(out)
		if out.Failed() {
			o.log.Info("intent failed",
				zap.String("action", out.Type()),
				zap.String("request_id", meta.ID),
				zap.String("error", out.(action.Failure).Message()))
		} else {
			o.log.Debug("outcome", zap.String("action", out.Type()), zap.String("request_id", meta.ID))
		}
		p.outcome = out
		close(p.done)
	}()
	return p
}

// Do dispatches in and waits for its outcome.
func (o *Orchestrator) Do(ctx context.Context, in action.Intent) (action.Outcome, error) {
	return o.Dispatch(in).Wait(ctx)
}

// Restore loads a stored session into the store without calling the
// backend. It reports whether one was found.
func (o *Orchestrator) Restore(ctx context.Context) (bool, error) {
	s, ok, err := session.Bootstrap(ctx, o.sessions)
	if err != nil {
		return false, fmt.Errorf("bootstrap session: %w", err)
	}
	if ok {
		o.store.Dispatch(action.SessionRestored{Session: s})
	}
	return ok, nil
}

// Close stops waiting effects and returns once every outcome has been
// applied. Effects cut short report a failure outcome.
func (o *Orchestrator) Close() {
	o.cancel()
	o.wg.Wait()
}

func (o *Orchestrator) run(ctx context.Context, m action.Meta, in action.Intent) action.Outcome {
	switch in := in.(type) {
	case action.LoginRequest:
		s, err := o.api.Login(ctx, in.Credentials)
		if err != nil {
			return action.LoginFailure{Meta: m, Err: message(err, FallbackLogin)}
		}
		if err := o.storage(func(ctx context.Context) error { return session.Save(ctx, o.sessions, s) }); err != nil {
			return action.LoginFailure{Meta: m, Err: message(err, FallbackLogin)}
		}
		return action.LoginSuccess{Meta: m, Session: s}

	case action.LogoutRequest:
		if err := o.api.Logout(ctx); err != nil {
			o.log.Warn("logout call failed", zap.Error(err))
		}
		o.storage(func(ctx context.Context) error { return session.Clear(ctx, o.sessions) })
		return action.LogoutSuccess{Meta: m}

	case action.ValidateTokenRequest:
		u, err := o.api.ValidateToken(ctx, in.Token)
		if err != nil {
			o.storage(func(ctx context.Context) error { return session.Clear(ctx, o.sessions) })
			return action.ValidateTokenFailure{Meta: m, Err: message(err, "")}
		}
		return action.ValidateTokenSuccess{Meta: m, User: u}

	case action.FetchAppointmentsRequest:
		items, err := o.api.ListAppointments(ctx)
		if err != nil {
			return action.FetchAppointmentsFailure{Meta: m, Err: message(err, FallbackFetchAppointments)}
		}
		return action.FetchAppointmentsSuccess{Meta: m, Appointments: items}

	case action.FetchAppointmentRequest:
		a, err := o.api.GetAppointment(ctx, in.ID)
		if err != nil {
			return action.FetchAppointmentFailure{Meta: m, Err: message(err, FallbackFetchAppointment)}
		}
		return action.FetchAppointmentSuccess{Meta: m, Appointment: a}

	case action.CreateAppointmentRequest:
		a, err := o.api.CreateAppointment(ctx, in.Fields)
		if err != nil {
			return action.CreateAppointmentFailure{Meta: m, Err: message(err, FallbackCreateAppointment)}
		}
		return action.CreateAppointmentSuccess{Meta: m, Appointment: a}

	case action.UpdateAppointmentRequest:
		a, err := o.api.UpdateAppointment(ctx, in.ID, in.Patch)
		if err != nil {
			return action.UpdateAppointmentFailure{Meta: m, Err: message(err, FallbackUpdateAppointment)}
		}
		return action.UpdateAppointmentSuccess{Meta: m, Appointment: a}

	case action.DeleteAppointmentRequest:
		if err := o.api.DeleteAppointment(ctx, in.ID); err != nil {
			return action.DeleteAppointmentFailure{Meta: m, Err: message(err, FallbackDeleteAppointment)}
		}
		return action.DeleteAppointmentSuccess{Meta: m, ID: in.ID}

	case action.GenerateInvoiceRequest:
		inv, err := o.api.GenerateInvoice(ctx, in.Appointment)
		if err != nil {
			return action.GenerateInvoiceFailure{Meta: m, Err: message(err, FallbackGenerateInvoice)}
		}
		return action.GenerateInvoiceSuccess{Meta: m, Invoice: inv}

	case action.GetServiceCostRequest:
		sc, err := o.api.ServiceCost(ctx, in.ServiceName)
		if err != nil {
			return action.GetServiceCostFailure{Meta: m, Err: message(err, FallbackServiceCost)}
		}
		return action.GetServiceCostSuccess{Meta: m, ServiceCost: sc}
	}
	panic(fmt.Sprintf("orchestrator: unhandled intent %T", in))
}

// storage runs a session write. It outlives Close so a login or logout
// that completed is still reflected on disk.
func (o *Orchestrator) storage(fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(o.base), storageTimeout)
	defer cancel()
	err := fn(ctx)
	if err != nil {
		o.log.Warn("session storage", zap.Error(err))
	}
	return err
}

// message is the text a failure outcome carries. Shutdown and empty
// errors fall back to the per-operation string.
func message(err error, fallback string) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if fallback != "" {
			return fallback
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
