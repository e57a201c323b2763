// Package mockapi is the simulated clinic backend. Every call waits a
// fixed artificial delay and then resolves with data or fails with a
// single error. There are no retries and no timeouts.
package mockapi

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"clinic-console-api/internal/auth"
	"clinic-console-api/internal/model"
	"clinic-console-api/internal/store"
)

type Service struct {
	appts   store.Appointments
	catalog *store.Catalog
	demo    *auth.Demo
	tokens  *auth.Tokens
	lat     Latency
	log     *zap.Logger
	now     func() time.Time
}

func New(appts store.Appointments, catalog *store.Catalog, demo *auth.Demo, tokens *auth.Tokens, lat Latency, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		appts:   appts,
		catalog: catalog,
		demo:    demo,
		tokens:  tokens,
		lat:     lat,
		log:     log.Named("mockapi"),
		now:     time.Now,
	}
}

func (s *Service) call(ctx context.Context, op string, d time.Duration) error {
	s.log.Debug("mock api request", zap.String("op", op))
	return sleep(ctx, d)
}

func (s *Service) done(op string, err error) {
	if err != nil {
		s.log.Debug("mock api error", zap.String("op", op), zap.Error(err))
		return
	}
	s.log.Debug("mock api response", zap.String("op", op))
}

func (s *Service) Login(ctx context.Context, c model.Credentials) (sess model.Session, err error) {
	defer func() { s.done("login", err) }()
	if err := s.call(ctx, "login", s.lat.Login); err != nil {
		return model.Session{}, err
	}
	if !s.demo.Check(c) {
		return model.Session{}, ErrInvalidCredentials
	}
	u := s.demo.User()
	tok, err := s.tokens.Issue(u)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{User: u, Token: tok}, nil
}

func (s *Service) Logout(ctx context.Context) (err error) {
	defer func() { s.done("logout", err) }()
	return s.call(ctx, "logout", s.lat.Logout)
}

func (s *Service) ValidateToken(ctx context.Context, token string) (u model.User, err error) {
	defer func() { s.done("validateToken", err) }()
	if err := s.call(ctx, "validateToken", s.lat.ValidateToken); err != nil {
		return model.User{}, err
	}
	if err := s.tokens.Validate(token); err != nil {
		return model.User{}, ErrInvalidToken
	}
	return s.demo.User(), nil
}

func (s *Service) ListAppointments(ctx context.Context) (out []model.Appointment, err error) {
	defer func() { s.done("listAppointments", err) }()
	if err := s.call(ctx, "listAppointments", s.lat.List); err != nil {
		return nil, err
	}
	return s.appts.List(ctx)
}

func (s *Service) GetAppointment(ctx context.Context, id int) (a model.Appointment, err error) {
	defer func() { s.done("getAppointment", err) }()
	if err := s.call(ctx, "getAppointment", s.lat.Get); err != nil {
		return model.Appointment{}, err
	}
	a, err = s.appts.Get(ctx, id)
	return a, notFound(err)
}

func (s *Service) CreateAppointment(ctx context.Context, f model.AppointmentFields) (a model.Appointment, err error) {
	defer func() { s.done("createAppointment", err) }()
	if err := s.call(ctx, "createAppointment", s.lat.Create); err != nil {
		return model.Appointment{}, err
	}
	return s.appts.Create(ctx, f)
}

func (s *Service) UpdateAppointment(ctx context.Context, id int, p model.AppointmentPatch) (a model.Appointment, err error) {
	defer func() { s.done("updateAppointment", err) }()
	if err := s.call(ctx, "updateAppointment", s.lat.Update); err != nil {
		return model.Appointment{}, err
	}
	a, err = s.appts.Update(ctx, id, p)
	return a, notFound(err)
}

func (s *Service) DeleteAppointment(ctx context.Context, id int) (err error) {
	defer func() { s.done("deleteAppointment", err) }()
	if err := s.call(ctx, "deleteAppointment", s.lat.Delete); err != nil {
		return err
	}
	return notFound(s.appts.Delete(ctx, id))
}

func (s *Service) ServiceCost(ctx context.Context, name string) (sc model.ServiceCost, err error) {
	defer func() { s.done("serviceCost", err) }()
	if err := s.call(ctx, "serviceCost", s.lat.ServiceCost); err != nil {
		return model.ServiceCost{}, err
	}
	sc, ok := s.catalog.CostByService(name)
	if !ok {
		return model.ServiceCost{}, &ServiceCostNotFoundError{Service: name}
	}
	return sc, nil
}

func (s *Service) GenerateInvoice(ctx context.Context, a model.Appointment) (inv model.Invoice, err error) {
	defer func() { s.done("generateInvoice", err) }()
	if err := s.call(ctx, "generateInvoice", s.lat.Invoice); err != nil {
		return model.Invoice{}, err
	}
	sc, ok := s.catalog.CostByService(a.Service)
	if !ok {
		return model.Invoice{}, &ServiceCostNotFoundError{Service: a.Service}
	}
	return buildInvoice(a, sc, s.catalog.ClinicInfo(), s.now())
}

// ServiceCosts and ClinicInfo are reference data and answer immediately.
func (s *Service) ServiceCosts() []model.ServiceCost { return s.catalog.ServiceCosts() }

func (s *Service) ClinicInfo() model.ClinicInfo { return s.catalog.ClinicInfo() }

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
