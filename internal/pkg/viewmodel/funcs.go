package viewmodel

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "02.01.2006"

// Funcs returns the helpers registered on the html template engine
func Funcs() map[string]interface{} {
	return map[string]interface{}{
		"money":   Money,
		"date":    Date,
		"isID":    IsID,
		"idValue": IDValue,
	}
}

// Money formats an amount with two decimals
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Date formats a date in the Swiss notation. Nil pointers yield an empty string.
func Date(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(dateLayout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format(dateLayout)
	}
	return ""
}

// IsID reports whether the optional id equals id
func IsID(ptr *uint, id uint) bool {
	return ptr != nil && *ptr == id
}

// IDValue renders an optional id for form inputs
func IDValue(ptr *uint) string {
	if ptr == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*ptr), 10)
}
