package orchestrator_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-console-api/internal/action"
	"clinic-console-api/internal/auth"
	"clinic-console-api/internal/mockapi"
	"clinic-console-api/internal/model"
	"clinic-console-api/internal/orchestrator"
	"clinic-console-api/internal/session"
	"clinic-console-api/internal/state"
	"clinic-console-api/internal/store"
)

type env struct {
	orc      *orchestrator.Orchestrator
	store    *state.Store
	sessions *session.Memory
}

func newAPI(t *testing.T, lat mockapi.Latency) *mockapi.Service {
	t.Helper()
	demo, err := auth.NewDemo(auth.DefaultDemoEmail, auth.DefaultDemoPassword)
	require.NoError(t, err)
	return mockapi.New(
		store.NewMemory(store.DemoAppointments()),
		store.NewCatalog(store.DemoServiceCosts(), store.DemoClinicInfo()),
		demo, auth.NewTokens(""), lat, nil,
	)
}

func setup(t *testing.T, api orchestrator.API) env {
	t.Helper()
	st := state.NewStore(state.Initial(store.DemoServiceCosts(), store.DemoClinicInfo()), nil)
	sessions := session.NewMemory()
	orc := orchestrator.New(api, st, sessions, nil)
	t.Cleanup(orc.Close)
	return env{orc: orc, store: st, sessions: sessions}
}

func do(t *testing.T, e env, in action.Intent) action.Outcome {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := e.orc.Do(ctx, in)
	require.NoError(t, err)
	return out
}

var demoCreds = model.Credentials{Email: "admin@amsc.com", Password: "admin123"}

func TestLoginSuccessPersistsSession(t *testing.T) {
	e := setup(t, newAPI(t, mockapi.Latency{}))

	out := do(t, e, action.LoginRequest{Credentials: demoCreds})
	ok, isSuccess := out.(action.LoginSuccess)
	require.True(t, isSuccess, "got %s", out.Type())
	assert.NotEmpty(t, ok.RequestID())

	snap := e.store.Snapshot()
	assert.True(t, snap.Auth.IsAuthenticated)
	assert.False(t, snap.Auth.IsLoading)
	assert.Equal(t, ok.Session.Token, snap.Auth.Token)

	tok, found, _ := e.sessions.Get(context.Background(), session.TokenKey)
	assert.True(t, found)
	assert.Equal(t, ok.Session.Token, tok)
	_, found, _ = e.sessions.Get(context.Background(), session.UserKey)
	assert.True(t, found)
}

type readOnlyStorage struct{ *session.Memory }

func (readOnlyStorage) Set(context.Context, string, string) error {
	return errors.New("storage is read-only")
}

func TestLoginFailsWhenSessionCannotBeSaved(t *testing.T) {
	st := state.NewStore(state.Initial(store.DemoServiceCosts(), store.DemoClinicInfo()), nil)
	orc := orchestrator.New(newAPI(t, mockapi.Latency{}), st, readOnlyStorage{session.NewMemory()}, nil)
	t.Cleanup(orc.Close)

	out, err := orc.Do(context.Background(), action.LoginRequest{Credentials: demoCreds})
	require.NoError(t, err)
	f, ok := out.(action.LoginFailure)
	require.True(t, ok, "got %s", out.Type())
	assert.Contains(t, f.Message(), "storage is read-only")

	snap := st.Snapshot()
	assert.False(t, snap.Auth.IsAuthenticated)
	assert.Empty(t, snap.Auth.Token)
	assert.Contains(t, snap.Auth.Error, "storage is read-only")
}

func TestLoginFailure(t *testing.T) {
	e := setup(t, newAPI(t, mockapi.Latency{}))

	out := do(t, e, action.LoginRequest{Credentials: model.Credentials{Email: "admin@amsc.com", Password: "x"}})
	f, ok := out.(action.LoginFailure)
	require.True(t, ok)
	assert.Equal(t, "Invalid credentials", f.Err)

	snap := e.store.Snapshot()
	assert.False(t, snap.Auth.IsAuthenticated)
	assert.Equal(t, "Invalid credentials", snap.Auth.Error)
	_, found, _ := e.sessions.Get(context.Background(), session.TokenKey)
	assert.False(t, found)
}

func TestLogoutAlwaysClears(t *testing.T) {
	api := &failingAPI{Service: newAPI(t, mockapi.Latency{}), err: errors.New("network down")}
	e := setup(t, api)
	require.NoError(t, session.Save(context.Background(), e.sessions, model.Session{Token: "amsc_token_1"}))

	out := do(t, e, action.LogoutRequest{})
	assert.IsType(t, action.LogoutSuccess{}, out)
	assert.False(t, e.store.Snapshot().Auth.IsAuthenticated)

	_, found, _ := e.sessions.Get(context.Background(), session.TokenKey)
	assert.False(t, found)
	_, found, _ = e.sessions.Get(context.Background(), session.UserKey)
	assert.False(t, found)
}

func TestValidateToken(t *testing.T) {
	e := setup(t, newAPI(t, mockapi.Latency{}))
	require.NoError(t, session.Save(context.Background(), e.sessions, model.Session{Token: "bad"}))

	out := do(t, e, action.ValidateTokenRequest{Token: "bad"})
	f, ok := out.(action.ValidateTokenFailure)
	require.True(t, ok)
	assert.Equal(t, "Invalid token", f.Err)
	assert.Empty(t, e.store.Snapshot().Auth.Error)
	_, found, _ := e.sessions.Get(context.Background(), session.TokenKey)
	assert.False(t, found)

	out = do(t, e, action.ValidateTokenRequest{Token: "amsc_token_42"})
	s, ok := out.(action.ValidateTokenSuccess)
	require.True(t, ok)
	assert.Equal(t, "admin", s.User.Role)
	assert.True(t, e.store.Snapshot().Auth.IsAuthenticated)
}

func TestAppointmentFlow(t *testing.T) {
	e := setup(t, newAPI(t, mockapi.Latency{}))

	do(t, e, action.FetchAppointmentsRequest{})
	require.Len(t, e.store.Snapshot().Appointments.Items, 5)

	out := do(t, e, action.CreateAppointmentRequest{Fields: model.AppointmentFields{
		PatientName: "Ana", PatientPhone: "1", PatientEmail: "ana@email.com",
		AppointmentDate: "2024-01-20", AppointmentTime: "1:00 PM", Service: "X-Ray",
		Doctor: "Dr. Sarah Johnson", Status: model.StatusPending, Duration: 15,
	}})
	created := out.(action.CreateAppointmentSuccess).Appointment
	assert.Equal(t, 6, created.ID)

	do(t, e, action.FetchAppointmentRequest{ID: 6})
	require.NotNil(t, e.store.Snapshot().Appointments.Selected)

	status := model.StatusConfirmed
	do(t, e, action.UpdateAppointmentRequest{ID: 6, Patch: model.AppointmentPatch{Status: &status}})
	snap := e.store.Snapshot()
	assert.Equal(t, model.StatusConfirmed, snap.Appointments.Items[5].Status)
	assert.Equal(t, model.StatusConfirmed, snap.Appointments.Selected.Status)

	do(t, e, action.DeleteAppointmentRequest{ID: 6})
	snap = e.store.Snapshot()
	assert.Len(t, snap.Appointments.Items, 5)
	assert.Nil(t, snap.Appointments.Selected)
}

func TestNotFoundOutcomes(t *testing.T) {
	e := setup(t, newAPI(t, mockapi.Latency{}))
	do(t, e, action.FetchAppointmentsRequest{})
	before := e.store.Snapshot().Appointments.Items

	name := "x"
	for _, in := range []action.Intent{
		action.FetchAppointmentRequest{ID: 99},
		action.UpdateAppointmentRequest{ID: 99, Patch: model.AppointmentPatch{PatientName: &name}},
		action.DeleteAppointmentRequest{ID: 99},
	} {
		out := do(t, e, in)
		require.True(t, out.Failed(), in.Type())
		assert.Equal(t, "Appointment not found", out.(action.Failure).Message())
		assert.Equal(t, "Appointment not found", e.store.Snapshot().Appointments.Error)
	}
	assert.Equal(t, before, e.store.Snapshot().Appointments.Items)
}

func TestBillingOutcomes(t *testing.T) {
	e := setup(t, newAPI(t, mockapi.Latency{}))

	out := do(t, e, action.GenerateInvoiceRequest{Appointment: store.DemoAppointments()[0]})
	inv := out.(action.GenerateInvoiceSuccess).Invoice
	assert.Equal(t, 162.0, inv.GrandTotal)
	snap := e.store.Snapshot()
	require.NotNil(t, snap.Billing.CurrentInvoice)
	assert.Len(t, snap.Billing.Invoices, 1)

	out = do(t, e, action.GenerateInvoiceRequest{Appointment: store.DemoAppointments()[3]})
	assert.Equal(t, "Service cost not found for: Orthopedic Consultation", out.(action.Failure).Message())
	assert.Len(t, e.store.Snapshot().Billing.Invoices, 1)

	out = do(t, e, action.GetServiceCostRequest{ServiceName: "Ultrasound"})
	assert.Equal(t, 250.0, out.(action.GetServiceCostSuccess).ServiceCost.Cost)
}

func TestFallbackMessages(t *testing.T) {
	api := &failingAPI{Service: newAPI(t, mockapi.Latency{}), err: errors.New("")}
	e := setup(t, api)

	tests := []struct {
		in   action.Intent
		want string
	}{
		{action.LoginRequest{Credentials: demoCreds}, orchestrator.FallbackLogin},
		{action.FetchAppointmentsRequest{}, orchestrator.FallbackFetchAppointments},
		{action.FetchAppointmentRequest{ID: 1}, orchestrator.FallbackFetchAppointment},
		{action.CreateAppointmentRequest{}, orchestrator.FallbackCreateAppointment},
		{action.UpdateAppointmentRequest{ID: 1}, orchestrator.FallbackUpdateAppointment},
		{action.DeleteAppointmentRequest{ID: 1}, orchestrator.FallbackDeleteAppointment},
		{action.GenerateInvoiceRequest{}, orchestrator.FallbackGenerateInvoice},
		{action.GetServiceCostRequest{ServiceName: "X-Ray"}, orchestrator.FallbackServiceCost},
	}
	for _, tt := range tests {
		t.Run(tt.in.Type(), func(t *testing.T) {
			out := do(t, e, tt.in)
			require.True(t, out.Failed())
			assert.Equal(t, tt.want, out.(action.Failure).Message())
		})
	}
}

func TestOutcomeCarriesRequestID(t *testing.T) {
	e := setup(t, newAPI(t, mockapi.Latency{}))
	p := e.orc.Dispatch(action.FetchAppointmentsRequest{})
	out, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, p.RequestID(), out.RequestID())
}

func TestEachIntentGetsOneOutcome(t *testing.T) {
	e := setup(t, newAPI(t, mockapi.Latency{}))
	ch, cancel := e.store.Subscribe(256)
	defer cancel()

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := e.orc.Dispatch(action.FetchAppointmentsRequest{})
			out, err := p.Wait(context.Background())
			if assert.NoError(t, err) {
				ids <- out.RequestID()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Len(t, ch, 2*n)
	assert.False(t, e.store.Snapshot().Appointments.IsLoading)
}

func TestAbandonedWaitStillApplies(t *testing.T) {
	e := setup(t, newAPI(t, mockapi.Latency{List: 50 * time.Millisecond}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	p := e.orc.Dispatch(action.FetchAppointmentsRequest{})
	_, err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, e.store.Snapshot().Appointments.IsLoading)

	_, err = p.Wait(context.Background())
	require.NoError(t, err)
	snap := e.store.Snapshot()
	assert.False(t, snap.Appointments.IsLoading)
	assert.Len(t, snap.Appointments.Items, 5)
}

func TestLastWriteWins(t *testing.T) {
	api := newAPI(t, mockapi.Latency{})
	gated := &gatedAPI{Service: api, release: map[string]chan struct{}{
		"first":  make(chan struct{}),
		"second": make(chan struct{}),
	}}
	e := setup(t, gated)
	do(t, e, action.FetchAppointmentsRequest{})

	first, second := "first", "second"
	p1 := e.orc.Dispatch(action.UpdateAppointmentRequest{ID: 1, Patch: model.AppointmentPatch{Notes: &first}})
	p2 := e.orc.Dispatch(action.UpdateAppointmentRequest{ID: 1, Patch: model.AppointmentPatch{Notes: &second}})

	close(gated.release["second"])
	_, err := p2.Wait(context.Background())
	require.NoError(t, err)
	close(gated.release["first"])
	_, err = p1.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "first", e.store.Snapshot().Appointments.Items[0].Notes)
}

func TestCloseResolvesInFlight(t *testing.T) {
	st := state.NewStore(state.Initial(nil, model.ClinicInfo{}), nil)
	orc := orchestrator.New(newAPI(t, mockapi.Latency{List: time.Hour}), st, session.NewMemory(), nil)

	p := orc.Dispatch(action.FetchAppointmentsRequest{})
	orc.Close()

	out, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, orchestrator.FallbackFetchAppointments, out.(action.Failure).Message())
	assert.False(t, st.Snapshot().Appointments.IsLoading)
}

func TestRestore(t *testing.T) {
	e := setup(t, newAPI(t, mockapi.Latency{}))
	ctx := context.Background()

	ok, err := e.orc.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, e.sessions.Set(ctx, session.TokenKey, "amsc_token_123"))
	require.NoError(t, e.sessions.Set(ctx, session.UserKey, "{not json"))
	ok, err = e.orc.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, e.store.Snapshot().Auth.IsAuthenticated)

	require.NoError(t, session.Save(ctx, e.sessions, model.Session{User: model.User{ID: 1, Role: "admin"}, Token: "amsc_token_123"}))
	ok, err = e.orc.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	snap := e.store.Snapshot()
	assert.True(t, snap.Auth.IsAuthenticated)
	assert.Equal(t, "amsc_token_123", snap.Auth.Token)
}

// failingAPI fails every call with err.
type failingAPI struct {
	*mockapi.Service
	err error
}

func (f *failingAPI) Login(context.Context, model.Credentials) (model.Session, error) {
	return model.Session{}, f.err
}
func (f *failingAPI) Logout(context.Context) error { return f.err }
func (f *failingAPI) ListAppointments(context.Context) ([]model.Appointment, error) {
	return nil, f.err
}
func (f *failingAPI) GetAppointment(context.Context, int) (model.Appointment, error) {
	return model.Appointment{}, f.err
}
func (f *failingAPI) CreateAppointment(context.Context, model.AppointmentFields) (model.Appointment, error) {
	return model.Appointment{}, f.err
}
func (f *failingAPI) UpdateAppointment(context.Context, int, model.AppointmentPatch) (model.Appointment, error) {
	return model.Appointment{}, f.err
}
func (f *failingAPI) DeleteAppointment(context.Context, int) error { return f.err }
func (f *failingAPI) ServiceCost(context.Context, string) (model.ServiceCost, error) {
	return model.ServiceCost{}, f.err
}
func (f *failingAPI) GenerateInvoice(context.Context, model.Appointment) (model.Invoice, error) {
	return model.Invoice{}, f.err
}

// gatedAPI holds each update until the channel named by its notes closes.
type gatedAPI struct {
	*mockapi.Service
	release map[string]chan struct{}
}

func (g *gatedAPI) UpdateAppointment(ctx context.Context, id int, p model.AppointmentPatch) (model.Appointment, error) {
	<-g.release[*p.Notes]
	return g.Service.UpdateAppointment(ctx, id, p)
}
