package validation

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-dashboard/internal/dto"
)

func TestShiftTemplateTimes(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	ok := dto.ShiftTemplateDTO{Name: "Утро", StartTime: "08:00", EndTime: "16:30"}
	assert.NoError(t, v.Validate(ok))

	bad := dto.ShiftTemplateDTO{Name: "Ночь", StartTime: "24:00", EndTime: "8:00"}
	assert.Error(t, v.Validate(bad))
}

func TestOpeningHoursKeys(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	ok := dto.SaveOpeningHoursDTO{Hours: dto.OpeningHoursDTO{
		"mon": {{"09:00", "14:00"}, {"15:00", "22:00"}},
		"sun": {},
	}}
	assert.NoError(t, v.Validate(ok))

	unknownDay := dto.SaveOpeningHoursDTO{Hours: dto.OpeningHoursDTO{"monday": {{"09:00", "22:00"}}}}
	assert.Error(t, v.Validate(unknownDay))

	overnight := dto.SaveOpeningHoursDTO{Hours: dto.OpeningHoursDTO{
		"fri": {{"18:00", "02:00"}},
		"sat": {{"00:00", "00:00"}},
	}}
	assert.NoError(t, v.Validate(overnight))

	badClock := dto.SaveOpeningHoursDTO{Hours: dto.OpeningHoursDTO{"tue": {{"9:00", "25:00"}}}}
	assert.Error(t, v.Validate(badClock))
}

func TestPaymentMethod(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	p := dto.RecordPaymentDTO{Scope: dto.BillingScopeOrder, ScopeID: "o1", Method: "transfer", Amount: 10}
	assert.NoError(t, v.Validate(p))

	p.Method = "card"
	assert.Error(t, v.Validate(p))
}

func TestNullStringSkipsWhenInvalid(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(dto.UpdateStaffDTO{}))
	assert.Error(t, v.Validate(dto.UpdateStaffDTO{Email: null.StringFrom("not-an-email")}))
}
