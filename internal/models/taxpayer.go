package models

import "encoding/json"

// Taxpayer is a record in the municipal taxpayer registry, keyed by the
// identity document (CI). The registry attaches jurisdiction-specific fields
// beyond the fixed core, those round-trip through Extra untouched.
type Taxpayer struct {
	CI                   string
	LegalPerson          int
	FullName             string
	Address              string
	Phone                string
	TaxpayerCity         string
	HouseNumber          string
	Birthdate            string
	DisabilityPercentage int
	MaritalStatus        int

	// Extra holds registry fields outside the fixed core.
	Extra map[string]any
}

// taxpayerCore mirrors the fixed JSON fields of a taxpayer record.
type taxpayerCore struct {
	CI                   string `json:"ci,omitempty"`
	LegalPerson          int    `json:"legalPerson"`
	FullName             string `json:"fullName"`
	Address              string `json:"address"`
	Phone                string `json:"phone"`
	TaxpayerCity         string `json:"taxpayerCity"`
	HouseNumber          string `json:"houseNumber"`
	Birthdate            string `json:"birthdate,omitempty"`
	DisabilityPercentage int    `json:"disabilityPercentage"`
	MaritalStatus        int    `json:"maritalStatus"`
}

var taxpayerCoreFields = map[string]struct{}{
	"ci": {}, "legalPerson": {}, "fullName": {}, "address": {},
	"phone": {}, "taxpayerCity": {}, "houseNumber": {}, "birthdate": {},
	"disabilityPercentage": {}, "maritalStatus": {},
}

// UnmarshalJSON splits the payload into the fixed core and the open
// extension map.
func (t *Taxpayer) UnmarshalJSON(data []byte) error {
	var core taxpayerCore
	if err := json.Unmarshal(data, &core); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.CI = core.CI
	t.LegalPerson = core.LegalPerson
	t.FullName = core.FullName
	t.Address = core.Address
	t.Phone = core.Phone
	t.TaxpayerCity = core.TaxpayerCity
	t.HouseNumber = core.HouseNumber
	t.Birthdate = core.Birthdate
	t.DisabilityPercentage = core.DisabilityPercentage
	t.MaritalStatus = core.MaritalStatus

	t.Extra = nil
	for key, value := range raw {
		if _, ok := taxpayerCoreFields[key]; ok {
			continue
		}
		if t.Extra == nil {
			t.Extra = make(map[string]any)
		}
		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return err
		}
		t.Extra[key] = v
	}

	return nil
}

// MarshalJSON merges the fixed core with the extension map. Core fields win
// on key collision.
func (t Taxpayer) MarshalJSON() ([]byte, error) {
	core := taxpayerCore{
		CI:                   t.CI,
		LegalPerson:          t.LegalPerson,
		FullName:             t.FullName,
		Address:              t.Address,
		Phone:                t.Phone,
		TaxpayerCity:         t.TaxpayerCity,
		HouseNumber:          t.HouseNumber,
		Birthdate:            t.Birthdate,
		DisabilityPercentage: t.DisabilityPercentage,
		MaritalStatus:        t.MaritalStatus,
	}

	coreJSON, err := json.Marshal(core)
	if err != nil {
		return nil, err
	}

	if len(t.Extra) == 0 {
		return coreJSON, nil
	}

	merged := make(map[string]json.RawMessage)
	for key, value := range t.Extra {
		if _, ok := taxpayerCoreFields[key]; ok {
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		merged[key] = encoded
	}

	var coreMap map[string]json.RawMessage
	if err := json.Unmarshal(coreJSON, &coreMap); err != nil {
		return nil, err
	}
	for key, value := range coreMap {
		merged[key] = value
	}

	return json.Marshal(merged)
}
