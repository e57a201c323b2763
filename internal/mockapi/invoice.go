package mockapi

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"time"

	"clinic-console-api/internal/model"
)

const TaxRate = 0.08

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Totals returns tax = round(cost*TaxRate, 2) and
// grand = round(cost+tax, 2).
func Totals(cost float64) (tax, grand float64) {
	tax = round2(cost * TaxRate)
	grand = round2(cost + tax)
	return tax, grand
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// InvoiceID formats INV-<epoch ms>-<9 uppercase base36 chars>.
func InvoiceID(now time.Time) (string, error) {
	suffix := make([]byte, 9)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		suffix[i] = idAlphabet[n.Int64()]
	}
	return fmt.Sprintf("INV-%d-%s", now.UnixMilli(), suffix), nil
}

func buildInvoice(a model.Appointment, sc model.ServiceCost, clinic model.ClinicInfo, now time.Time) (model.Invoice, error) {
	id, err := InvoiceID(now)
	if err != nil {
		return model.Invoice{}, err
	}
	tax, grand := Totals(sc.Cost)
	return model.Invoice{
		ID:              id,
		AppointmentID:   a.ID,
		AppointmentData: model.SnapshotAppointment(a),
		ServicesCosts:   []model.ServiceCost{sc},
		ClinicInfo:      clinic,
		TotalAmount:     sc.Cost,
		TaxAmount:       tax,
		GrandTotal:      grand,
		CreatedAt:       now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Status:          model.InvoiceDraft,
	}, nil
}
