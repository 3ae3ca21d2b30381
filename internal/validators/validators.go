package validators

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// NoDupes rejects slices containing repeated values. Entry tag lists are
// sets of tag ids, so a duplicate is always a client mistake.
func NoDupes(fl validator.FieldLevel) bool {
	slice := fl.Field()
	if slice.Kind() != reflect.Slice {
		log.Warnf("validator 'nodupes' applied to non-slice type: %s", slice.Kind().String())
		return false
	}

	length := slice.Len()
	seen := make(map[any]bool, length)
	for i := 0; i < length; i++ {
		val := slice.Index(i).Interface()
		if seen[val] {
			return false
		}
		seen[val] = true
	}
	return true
}
