package api

import (
	"fmt"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
)

// decimalEq сравнивает decimal по значению, а не по внутреннему представлению.
func decimalEq(want decimal.Decimal) gomock.Matcher {
	return decimalMatcher{want: want}
}

type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Matches(x any) bool {
	got, ok := x.(decimal.Decimal)
	if !ok {
		return false
	}
	return got.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return fmt.Sprintf("decimal equal to %s", m.want.String())
}
