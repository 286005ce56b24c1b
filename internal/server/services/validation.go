package services

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/carsapi/internal/common"
	"github.com/dmitrijs2005/carsapi/internal/server/models"
)

const (
	msgRequired = "This field is required."
	msgBlank    = "This field may not be blank."

	maxUserNameLength = 150
	minPasswordLength = 8
	maxCarTextLength  = 100

	// mileage and price are INTEGER columns.
	maxCarNumber = math.MaxInt32
)

func maxLengthMsg(n int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", n)
}

func minValueMsg(n int) string {
	return fmt.Sprintf("Ensure this value is greater than or equal to %d.", n)
}

func maxValueMsg(n int) string {
	return fmt.Sprintf("Ensure this value is less than or equal to %d.", n)
}

func choiceMsg(v string) string {
	return fmt.Sprintf("%q is not a valid choice.", v)
}

func checkText(verr *common.ValidationError, field, v string, maxLen int) {
	switch {
	case strings.TrimSpace(v) == "":
		verr.Add(field, msgBlank)
	case utf8.RuneCountInString(v) > maxLen:
		verr.Add(field, maxLengthMsg(maxLen))
	}
}

func checkRange(verr *common.ValidationError, field string, v, lo, hi int) {
	if v < lo {
		verr.Add(field, minValueMsg(lo))
	}
	if v > hi {
		verr.Add(field, maxValueMsg(hi))
	}
}

func checkChoice(verr *common.ValidationError, field, v string, choices []string) {
	if !slices.Contains(choices, v) {
		verr.Add(field, choiceMsg(v))
	}
}

// validateCarFields checks the supplied fields of in. With partial unset,
// every field must be present.
func validateCarFields(in models.CarFields, partial bool) error {
	verr := common.NewValidationError()

	required := func(field string, present bool) bool {
		if !present && !partial {
			verr.Add(field, msgRequired)
		}
		return present
	}

	if required("brand", in.Brand != nil) {
		checkText(verr, "brand", *in.Brand, maxCarTextLength)
	}
	if required("model", in.Model != nil) {
		checkText(verr, "model", *in.Model, maxCarTextLength)
	}
	if required("year_made", in.YearMade != nil) {
		checkRange(verr, "year_made", *in.YearMade, models.MinYearMade, models.MaxYearMade)
	}
	if required("fuel", in.Fuel != nil) {
		checkChoice(verr, "fuel", *in.Fuel, models.FuelTypes)
	}
	if required("gear", in.Gear != nil) {
		checkChoice(verr, "gear", *in.Gear, models.GearTypes)
	}
	if required("mileage", in.Mileage != nil) {
		checkRange(verr, "mileage", *in.Mileage, 0, maxCarNumber)
	}
	if required("price", in.Price != nil) {
		checkRange(verr, "price", *in.Price, 0, maxCarNumber)
	}

	return verr.OrNil()
}
