package validation

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Способы оплаты, которые касса записывает вручную. QR-оплата идёт через CreatePaymentQR.
var paymentMethods = map[string]struct{}{
	"cash":     {},
	"transfer": {},
}

var weekdays = map[string]struct{}{
	"mon": {}, "tue": {}, "wed": {}, "thu": {}, "fri": {}, "sat": {}, "sun": {},
}

var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("hhmm", isHHMM); err != nil {
		return err
	}
	if err := v.RegisterValidation("weekday_keys", hasWeekdayKeys); err != nil {
		return err
	}
	if err := v.RegisterValidation("payment_method", isPaymentMethod); err != nil {
		return err
	}
	return nil
}

// isHHMM - время вида "09:30"
func isHHMM(fl validator.FieldLevel) bool {
	return hhmmRe.MatchString(fl.Field().String())
}

func isPaymentMethod(fl validator.FieldLevel) bool {
	_, ok := paymentMethods[fl.Field().String()]
	return ok
}

// hasWeekdayKeys - ключи карты только mon..sun, интервалы - пары HH:MM.
// Конец раньше начала допустим: так записываются ночные смены.
func hasWeekdayKeys(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Map {
		return false
	}
	iter := field.MapRange()
	for iter.Next() {
		if _, ok := weekdays[iter.Key().String()]; !ok {
			return false
		}
		ranges := iter.Value()
		for i := 0; i < ranges.Len(); i++ {
			pair := ranges.Index(i)
			if pair.Len() != 2 {
				return false
			}
			from, to := pair.Index(0).String(), pair.Index(1).String()
			if !hhmmRe.MatchString(from) || !hhmmRe.MatchString(to) {
				return false
			}
		}
	}
	return true
}
