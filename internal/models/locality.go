// Package models defines the locality records served by pinroute.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// OfficeType is the India Post office category.
type OfficeType string

const (
	BranchOffice OfficeType = "B.O"
	SubOffice    OfficeType = "S.O"
	HeadOffice   OfficeType = "H.O"
)

// DefaultState is applied to records that omit a state.
const DefaultState = "Maharashtra"

// OfficeTypes lists the known office categories.
var OfficeTypes = []OfficeType{BranchOffice, SubOffice, HeadOffice}

// Valid reports whether t is a known office category.
func (t OfficeType) Valid() bool {
	switch t {
	case BranchOffice, SubOffice, HeadOffice:
		return true
	}
	return false
}

// ErrInvalidLocality is wrapped by every Validate failure.
var ErrInvalidLocality = errors.New("invalid locality")

// Locality is a delivery office record, identified by its PIN code.
type Locality struct {
	ID         *surrealmodels.RecordID `json:"id,omitempty" yaml:"-"`
	Pincode    string                  `json:"pincode" yaml:"pincode"`
	OfficeName string                  `json:"office_name" yaml:"office_name"`
	District   string                  `json:"district" yaml:"district"`
	State      string                  `json:"state" yaml:"state"`
	OfficeType OfficeType              `json:"office_type" yaml:"office_type"`
	Created    *time.Time              `json:"created,omitempty" yaml:"-"`
}

// Normalize trims all text fields and fills in the default state and
// office type.
func (l *Locality) Normalize() {
	l.Pincode = strings.TrimSpace(l.Pincode)
	l.OfficeName = strings.TrimSpace(l.OfficeName)
	l.District = strings.TrimSpace(l.District)
	l.State = strings.TrimSpace(l.State)
	if l.State == "" {
		l.State = DefaultState
	}
	if l.OfficeType == "" {
		l.OfficeType = SubOffice
	}
}

// Validate checks the record once at the boundary so the rest of the code
// can trust it. PIN codes are six digits not starting with zero.
func (l Locality) Validate() error {
	switch {
	case !IsPincode(l.Pincode):
		return fmt.Errorf("%w: pincode %q must be 6 digits", ErrInvalidLocality, l.Pincode)
	case l.OfficeName == "":
		return fmt.Errorf("%w: office name is required (pincode %s)", ErrInvalidLocality, l.Pincode)
	case l.District == "":
		return fmt.Errorf("%w: district is required (pincode %s)", ErrInvalidLocality, l.Pincode)
	case !l.OfficeType.Valid():
		return fmt.Errorf("%w: office type %q not in %v (pincode %s)", ErrInvalidLocality, l.OfficeType, OfficeTypes, l.Pincode)
	}
	return nil
}

// IsPincode reports whether s looks like an Indian PIN code.
func IsPincode(s string) bool {
	if len(s) != 6 || s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// OfficeNames returns the display names of ls in order.
func OfficeNames(ls []Locality) []string {
	names := make([]string, len(ls))
	for i, l := range ls {
		names[i] = l.OfficeName
	}
	return names
}
