package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic-console-api/internal/model"
)

// Postgres keeps the appointment collection in a database table. It is
// opt-in; the console runs on Memory unless a database is configured.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const appointmentColumns = `id, patient_name, patient_phone, patient_email, appointment_date,
	appointment_time, service, doctor, status, duration, notes`

func scanAppointment(row pgx.Row) (model.Appointment, error) {
	var a model.Appointment
	var status string
	err := row.Scan(&a.ID, &a.PatientName, &a.PatientPhone, &a.PatientEmail, &a.AppointmentDate,
		&a.AppointmentTime, &a.Service, &a.Doctor, &status, &a.Duration, &a.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Appointment{}, ErrNotFound
	}
	a.Status = model.AppointmentStatus(status)
	return a, err
}

// Seed inserts the given rows when the table is empty.
func (s *Postgres) Seed(ctx context.Context, seed []model.Appointment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var n int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, a := range seed {
		if err := insertAppointment(ctx, tx, a); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func insertAppointment(ctx context.Context, tx pgx.Tx, a model.Appointment) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO appointments (`+appointmentColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.PatientName, a.PatientPhone, a.PatientEmail, a.AppointmentDate,
		a.AppointmentTime, a.Service, a.Doctor, string(a.Status), a.Duration, a.Notes,
	)
	return err
}

func (s *Postgres) List(ctx context.Context) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+appointmentColumns+` FROM appointments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Postgres) Get(ctx context.Context, id int) (model.Appointment, error) {
	return scanAppointment(s.pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id))
}

func (s *Postgres) Create(ctx context.Context, f model.AppointmentFields) (model.Appointment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.Appointment{}, err
	}
	defer tx.Rollback(ctx)

	// max+1 like the in-memory collection; a concurrent create can still
	// collide and fail on the primary key
	var id int
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM appointments`).Scan(&id); err != nil {
		return model.Appointment{}, err
	}
	a := f.WithID(id)
	if err := insertAppointment(ctx, tx, a); err != nil {
		return model.Appointment{}, err
	}
	return a, tx.Commit(ctx)
}

func (s *Postgres) Update(ctx context.Context, id int, p model.AppointmentPatch) (model.Appointment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.Appointment{}, err
	}
	defer tx.Rollback(ctx)

	cur, err := scanAppointment(tx.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return model.Appointment{}, err
	}
	a := p.Apply(cur)

	_, err = tx.Exec(ctx,
		`UPDATE appointments
		 SET patient_name=$1, patient_phone=$2, patient_email=$3, appointment_date=$4,
		     appointment_time=$5, service=$6, doctor=$7, status=$8, duration=$9, notes=$10,
		     updated_at=NOW()
		 WHERE id=$11`,
		a.PatientName, a.PatientPhone, a.PatientEmail, a.AppointmentDate,
		a.AppointmentTime, a.Service, a.Doctor, string(a.Status), a.Duration, a.Notes, id,
	)
	if err != nil {
		return model.Appointment{}, err
	}
	return a, tx.Commit(ctx)
}

func (s *Postgres) Delete(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
