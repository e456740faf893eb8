package form

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// EstimateDraft is the customer estimate form. Nothing is stored.
type EstimateDraft struct {
	CustomerName       string `json:"customer_name"`
	CustomerAddress    string `json:"customer_address"`
	CustomerPhone      string `json:"customer_phone"`
	CustomerEmail      string `json:"customer_email"`
	ProjectType        string `json:"project_type"`
	ProjectDescription string `json:"project_description"`
	MaterialsCost      string `json:"materials_cost"`
	LaborCost          string `json:"labor_cost"`
	AdditionalCosts    string `json:"additional_costs"`
	Notes              string `json:"notes"`
}

func (d EstimateDraft) Validate() error {
	switch {
	case blank(d.CustomerName):
		return required("customer_name")
	case blank(d.ProjectType):
		return required("project_type")
	}
	return nil
}

type Estimate struct {
	CustomerName       string    `json:"customer_name"`
	CustomerAddress    string    `json:"customer_address,omitempty"`
	CustomerPhone      string    `json:"customer_phone,omitempty"`
	CustomerEmail      string    `json:"customer_email,omitempty"`
	ProjectType        string    `json:"project_type"`
	ProjectDescription string    `json:"project_description,omitempty"`
	Materials          float64   `json:"materials"`
	Labor              float64   `json:"labor"`
	Additional         float64   `json:"additional"`
	Total              float64   `json:"total"`
	Notes              string    `json:"notes,omitempty"`
	PreparedAt         time.Time `json:"prepared_at"`
}

// PreviewEstimate totals the three cost lines. A line that does not start
// with a number counts as zero.
func PreviewEstimate(d EstimateDraft, now time.Time) (*Estimate, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	e := &Estimate{
		CustomerName:       d.CustomerName,
		CustomerAddress:    d.CustomerAddress,
		CustomerPhone:      d.CustomerPhone,
		CustomerEmail:      d.CustomerEmail,
		ProjectType:        d.ProjectType,
		ProjectDescription: d.ProjectDescription,
		Materials:          parseAmount(d.MaterialsCost),
		Labor:              parseAmount(d.LaborCost),
		Additional:         parseAmount(d.AdditionalCosts),
		Notes:              d.Notes,
		PreparedAt:         now,
	}
	e.Total = e.Materials + e.Labor + e.Additional
	return e, nil
}

// parseAmount reads the longest leading decimal number of s, so "1200.50 USD"
// is 1200.5 and "n/a" is 0.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	end, dot, digits := 0, false, false
scan:
	for i, r := range s {
		switch {
		case i == 0 && (r == '-' || r == '+'):
		case r >= '0' && r <= '9':
			digits = true
		case r == '.' && !dot:
			dot = true
		default:
			break scan
		}
		end = i + 1
	}
	if !digits {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
