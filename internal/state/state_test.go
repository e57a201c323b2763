package state_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-console-api/internal/action"
	"clinic-console-api/internal/model"
	"clinic-console-api/internal/state"
	"clinic-console-api/internal/store"
)

func initial() state.State {
	return state.Initial(store.DemoServiceCosts(), store.DemoClinicInfo())
}

func loaded() state.State {
	s := initial()
	return state.Reduce(s, action.FetchAppointmentsSuccess{Appointments: store.DemoAppointments()})
}

func TestInitial(t *testing.T) {
	s := initial()
	assert.False(t, s.Auth.IsAuthenticated)
	assert.Empty(t, s.Appointments.Items)
	assert.Len(t, s.Billing.ServicesCosts, 8)
	assert.Equal(t, store.DemoClinicInfo(), s.Billing.ClinicInfo)
	assert.Nil(t, s.Billing.CurrentInvoice)
}

func TestRequestSetsLoadingOnly(t *testing.T) {
	s := loaded()
	s.Appointments.Error = "old"

	for _, a := range []action.Action{
		action.FetchAppointmentsRequest{},
		action.FetchAppointmentRequest{ID: 1},
		action.CreateAppointmentRequest{},
		action.UpdateAppointmentRequest{ID: 1},
		action.DeleteAppointmentRequest{ID: 1},
	} {
		next := state.Reduce(s, a)
		assert.True(t, next.Appointments.IsLoading, a.Type())
		assert.Empty(t, next.Appointments.Error, a.Type())
		assert.Equal(t, s.Appointments.Items, next.Appointments.Items, a.Type())
	}
}

func TestFailureKeepsCollections(t *testing.T) {
	s := state.Reduce(loaded(), action.DeleteAppointmentRequest{ID: 2})
	next := state.Reduce(s, action.DeleteAppointmentFailure{Err: "Appointment not found"})
	assert.False(t, next.Appointments.IsLoading)
	assert.Equal(t, "Appointment not found", next.Appointments.Error)
	assert.Equal(t, s.Appointments.Items, next.Appointments.Items)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := loaded()
	before := s.Clone()
	_ = state.Reduce(s, action.DeleteAppointmentSuccess{ID: 1})
	_ = state.Reduce(s, action.UpdateAppointmentSuccess{Appointment: model.Appointment{ID: 2, Doctor: "x"}})
	assert.Equal(t, before, s)
}

func TestLoginTransitions(t *testing.T) {
	s := state.Reduce(initial(), action.LoginRequest{})
	assert.True(t, s.Auth.IsLoading)

	sess := model.Session{User: model.User{ID: 1, Role: "admin"}, Token: "amsc_token_1"}
	s = state.Reduce(s, action.LoginSuccess{Session: sess})
	assert.True(t, s.Auth.IsAuthenticated)
	assert.Equal(t, "amsc_token_1", s.Auth.Token)
	require.NotNil(t, s.Auth.User)
	assert.Equal(t, "admin", s.Auth.User.Role)

	s = state.Reduce(s, action.LoginFailure{Err: "Invalid credentials"})
	assert.False(t, s.Auth.IsAuthenticated)
	assert.Nil(t, s.Auth.User)
	assert.Empty(t, s.Auth.Token)
	assert.Equal(t, "Invalid credentials", s.Auth.Error)

	s = state.Reduce(s, action.ClearAuthError{})
	assert.Empty(t, s.Auth.Error)
}

func TestValidateTokenFailureSetsNoError(t *testing.T) {
	s := state.Reduce(initial(), action.SessionRestored{Session: model.Session{User: model.User{ID: 1}, Token: "amsc_token_1"}})
	assert.True(t, s.Auth.IsAuthenticated)

	s = state.Reduce(s, action.ValidateTokenRequest{Token: "amsc_token_1"})
	s = state.Reduce(s, action.ValidateTokenFailure{Err: "Invalid token"})
	assert.False(t, s.Auth.IsAuthenticated)
	assert.False(t, s.Auth.IsLoading)
	assert.Nil(t, s.Auth.User)
	assert.Empty(t, s.Auth.Token)
	assert.Empty(t, s.Auth.Error)
}

func TestLogoutKeepsErrorUntilSuccess(t *testing.T) {
	s := initial()
	s.Auth.Error = "boom"
	s = state.Reduce(s, action.LogoutRequest{})
	assert.True(t, s.Auth.IsLoading)
	assert.Equal(t, "boom", s.Auth.Error)
	s = state.Reduce(s, action.LogoutSuccess{})
	assert.Equal(t, state.Auth{}, s.Auth)
}

func TestUpdateReplacesListAndSelected(t *testing.T) {
	s := state.Reduce(loaded(), action.FetchAppointmentSuccess{Appointment: store.DemoAppointments()[1]})
	require.NotNil(t, s.Appointments.Selected)

	updated := store.DemoAppointments()[1]
	updated.Status = model.StatusConfirmed
	s = state.Reduce(s, action.UpdateAppointmentSuccess{Appointment: updated})

	assert.Equal(t, updated, s.Appointments.Items[1])
	assert.Equal(t, updated, *s.Appointments.Selected)
	assert.Len(t, s.Appointments.Items, 5)
}

func TestUpdateOtherLeavesSelected(t *testing.T) {
	s := state.Reduce(loaded(), action.FetchAppointmentSuccess{Appointment: store.DemoAppointments()[0]})
	updated := store.DemoAppointments()[3]
	updated.Notes = "changed"
	s = state.Reduce(s, action.UpdateAppointmentSuccess{Appointment: updated})
	assert.Equal(t, store.DemoAppointments()[0], *s.Appointments.Selected)
	assert.Equal(t, "changed", s.Appointments.Items[3].Notes)
}

func TestCreateAppends(t *testing.T) {
	a := model.Appointment{ID: 6, PatientName: "New"}
	s := state.Reduce(loaded(), action.CreateAppointmentSuccess{Appointment: a})
	require.Len(t, s.Appointments.Items, 6)
	assert.Equal(t, a, s.Appointments.Items[5])
}

func TestDeleteFiltersAndClearsSelected(t *testing.T) {
	s := state.Reduce(loaded(), action.FetchAppointmentSuccess{Appointment: store.DemoAppointments()[2]})
	s = state.Reduce(s, action.DeleteAppointmentSuccess{ID: 3})
	assert.Len(t, s.Appointments.Items, 4)
	assert.Nil(t, s.Appointments.Selected)
	for _, a := range s.Appointments.Items {
		assert.NotEqual(t, 3, a.ID)
	}
}

func TestFilters(t *testing.T) {
	f := model.AppointmentFilters{Status: "Pending", SearchTerm: "maria"}
	s := state.Reduce(loaded(), action.SetFilters{Filters: f})
	assert.Equal(t, f, s.Appointments.Filters)
	s = state.Reduce(s, action.ClearFilters{})
	assert.Equal(t, model.AppointmentFilters{}, s.Appointments.Filters)
}

func billed() (state.State, model.Invoice) {
	inv := model.Invoice{
		ID:            "INV-1-ABCDEFGHI",
		AppointmentID: 2,
		ServicesCosts: []model.ServiceCost{{ServiceName: "Cardiology Consultation", Cost: 300}},
		GrandTotal:    324,
		Status:        model.InvoiceDraft,
	}
	s := state.Reduce(initial(), action.GenerateInvoiceRequest{})
	return state.Reduce(s, action.GenerateInvoiceSuccess{Invoice: inv}), inv
}

func TestGenerateInvoice(t *testing.T) {
	s, inv := billed()
	assert.False(t, s.Billing.IsLoading)
	require.NotNil(t, s.Billing.CurrentInvoice)
	assert.Equal(t, inv, *s.Billing.CurrentInvoice)
	assert.Equal(t, []model.Invoice{inv}, s.Billing.Invoices)

	s = state.Reduce(s, action.ClearCurrentInvoice{})
	assert.Nil(t, s.Billing.CurrentInvoice)
	assert.Len(t, s.Billing.Invoices, 1)
}

func TestUpdateInvoiceStatus(t *testing.T) {
	s, inv := billed()
	s = state.Reduce(s, action.UpdateInvoiceStatus{InvoiceID: inv.ID, Status: model.InvoicePaid})
	assert.Equal(t, model.InvoicePaid, s.Billing.Invoices[0].Status)
	assert.Equal(t, model.InvoicePaid, s.Billing.CurrentInvoice.Status)

	unchanged := state.Reduce(s, action.UpdateInvoiceStatus{InvoiceID: "INV-nope", Status: model.InvoiceOverdue})
	assert.Equal(t, s, unchanged)
}

func TestServiceCostOutcomes(t *testing.T) {
	s := state.Reduce(initial(), action.GetServiceCostRequest{ServiceName: "MRI"})
	assert.True(t, s.Billing.IsLoading)
	failed := state.Reduce(s, action.GetServiceCostFailure{Err: "Service cost not found for: MRI"})
	assert.Equal(t, "Service cost not found for: MRI", failed.Billing.Error)

	ok := state.Reduce(s, action.GetServiceCostSuccess{ServiceCost: model.ServiceCost{Cost: 80}})
	assert.False(t, ok.Billing.IsLoading)
	assert.Nil(t, ok.Billing.CurrentInvoice)

	cleared := state.Reduce(failed, action.ClearBillingError{})
	assert.Empty(t, cleared.Billing.Error)
}

func TestStoreSubscribe(t *testing.T) {
	st := state.NewStore(initial(), nil)
	ch, cancel := st.Subscribe(4)
	defer cancel()

	st.Dispatch(action.FetchAppointmentsRequest{})
	st.Dispatch(action.FetchAppointmentsSuccess{Appointments: store.DemoAppointments()})

	first := <-ch
	assert.True(t, first.Appointments.IsLoading)
	second := <-ch
	assert.Len(t, second.Appointments.Items, 5)
	assert.Equal(t, second, st.Snapshot())
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	st := state.NewStore(initial(), nil)
	_, cancel := st.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			st.Dispatch(action.ClearFilters{})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch blocked on a full subscriber")
	}
}

func TestUnsubscribeCloses(t *testing.T) {
	st := state.NewStore(initial(), nil)
	ch, cancel := st.Subscribe(1)
	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
	st.Dispatch(action.ClearFilters{})
}

func TestSnapshotIsolated(t *testing.T) {
	st := state.NewStore(initial(), nil)
	st.Dispatch(action.FetchAppointmentsSuccess{Appointments: store.DemoAppointments()})
	snap := st.Snapshot()
	snap.Appointments.Items[0].PatientName = "mutated"
	snap.Billing.ServicesCosts[0].Cost = 0
	assert.Equal(t, "John Smith", st.Snapshot().Appointments.Items[0].PatientName)
	assert.Equal(t, 150.0, st.Snapshot().Billing.ServicesCosts[0].Cost)
}
