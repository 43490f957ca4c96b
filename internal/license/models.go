// internal/license/models.go
package license

import "time"

// Status is the lifecycle state of a license record.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
)

// Record is an immutable snapshot of one upstream license row. The serial
// number uniquely identifies a record within one fetch cycle.
type Record struct {
	SerialNumber string    `json:"license_serial_number"`
	Name         string    `json:"name"`
	Type         string    `json:"license_type"`
	Status       Status    `json:"status"`
	County       string    `json:"county"`
	City         string    `json:"city,omitempty"`
	Address      string    `json:"address,omitempty"`
	Zip          string    `json:"zip,omitempty"`
	RawDate      string    `json:"date,omitempty"`
	Date         time.Time `json:"-"`
}

// rawRecord covers the field name variants the two Socrata datasets use.
type rawRecord struct {
	SerialNumber  string `json:"license_serial_number"`
	PremiseName   string `json:"premise_name"`
	PremisesName  string `json:"premises_name"`
	DBA           string `json:"doing_business_as_dba"`
	LicenseType   string `json:"license_type_name"`
	LicenseClass  string `json:"license_class_code"`
	CountyName    string `json:"county_name"`
	County        string `json:"county"`
	City          string `json:"city"`
	Address       string `json:"actual_address_of_premises_address"`
	Zip           string `json:"zip"`
	EffectiveDate string `json:"license_effective_date"`
	OriginalDate  string `json:"license_original_issue_date"`
	FiledDate     string `json:"date_filed"`
}

func (r rawRecord) name() string {
	if r.PremiseName != "" {
		return r.PremiseName
	}
	if r.PremisesName != "" {
		return r.PremisesName
	}
	return r.DBA
}

func (r rawRecord) licenseType() string {
	if r.LicenseType != "" {
		return r.LicenseType
	}
	return r.LicenseClass
}

func (r rawRecord) county() string {
	if r.CountyName != "" {
		return r.CountyName
	}
	return r.County
}

func (r rawRecord) date() string {
	switch {
	case r.EffectiveDate != "":
		return r.EffectiveDate
	case r.OriginalDate != "":
		return r.OriginalDate
	default:
		return r.FiledDate
	}
}

// Socrata serves floating timestamps; older extracts use plain dates.
var dateLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ParseDate parses an upstream date string, returning the zero time when the
// value is empty or in no known layout.
func ParseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
