package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocality_Normalize(t *testing.T) {
	l := Locality{Pincode: " 442001 ", OfficeName: " Wardha HO", District: "Wardha "}
	l.Normalize()

	assert.Equal(t, "442001", l.Pincode)
	assert.Equal(t, "Wardha HO", l.OfficeName)
	assert.Equal(t, "Wardha", l.District)
	assert.Equal(t, DefaultState, l.State)
	assert.Equal(t, SubOffice, l.OfficeType)
}

func TestLocality_Validate(t *testing.T) {
	valid := Locality{Pincode: "442001", OfficeName: "Wardha HO", District: "Wardha", State: "Maharashtra", OfficeType: HeadOffice}

	tests := []struct {
		name    string
		mutate  func(*Locality)
		wantErr bool
	}{
		{"valid", func(*Locality) {}, false},
		{"short pincode", func(l *Locality) { l.Pincode = "44200" }, true},
		{"leading zero", func(l *Locality) { l.Pincode = "042001" }, true},
		{"letters in pincode", func(l *Locality) { l.Pincode = "44A001" }, true},
		{"missing name", func(l *Locality) { l.OfficeName = "" }, true},
		{"missing district", func(l *Locality) { l.District = "" }, true},
		{"unknown office type", func(l *Locality) { l.OfficeType = "G.P.O" }, true},
		{"branch office", func(l *Locality) { l.OfficeType = BranchOffice }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid
			tt.mutate(&l)
			err := l.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLocality)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOfficeNames(t *testing.T) {
	ls := []Locality{{OfficeName: "Sawangi"}, {OfficeName: "Sevagram"}}
	assert.Equal(t, []string{"Sawangi", "Sevagram"}, OfficeNames(ls))
	assert.Empty(t, OfficeNames(nil))
}
