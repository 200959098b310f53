package metadata

import "strings"

// ActivityCode tags why material left the store.
type ActivityCode struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var activityCodes = []ActivityCode{
	{Code: "FND-001", Label: "Foundation Work"},
	{Code: "STR-001", Label: "Structural Work"},
	{Code: "FIN-001", Label: "Finishing Work"},
	{Code: "PLB-001", Label: "Plumbing Work"},
	{Code: "ELC-001", Label: "Electrical Work"},
	{Code: "PNT-001", Label: "Painting Work"},
}

const activitySeparator = " - "

func ActivityCodes() []ActivityCode {
	out := make([]ActivityCode, len(activityCodes))
	copy(out, activityCodes)
	return out
}

// String renders the option value, e.g. "FND-001 - Foundation Work".
func (a ActivityCode) String() string {
	return a.Code + activitySeparator + a.Label
}

// ShortActivityCode strips the label from an option value:
// "FND-001 - Foundation Work" becomes "FND-001". Plain codes pass through.
func ShortActivityCode(value string) string {
	code, _, _ := strings.Cut(value, activitySeparator)
	return code
}

func LookupActivityCode(value string) (ActivityCode, bool) {
	code := strings.TrimSpace(ShortActivityCode(value))
	for _, a := range activityCodes {
		if strings.EqualFold(a.Code, code) {
			return a, true
		}
	}
	return ActivityCode{}, false
}
