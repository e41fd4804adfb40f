// Package export writes registrations out as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/aribt/hackathon-cms/shared/domain"
)

// Filename is the download name offered to the browser.
const Filename = "hackathon_registrations.csv"

const dateLayout = "2006-01-02"

var header = []string{"Team Name", "Email", "Contact No", "Registration Date"}

// WriteRegistrations writes one header row and one row per registration,
// in the given order.
func WriteRegistrations(w io.Writer, regs []domain.Registration) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, reg := range regs {
		var date string
		if !reg.CreatedAt.IsZero() {
			date = reg.CreatedAt.Local().Format(dateLayout)
		}
		if err := cw.Write([]string{reg.TeamName, reg.Email, reg.ContactNo, date}); err != nil {
			return fmt.Errorf("failed to write registration %s: %w", reg.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
