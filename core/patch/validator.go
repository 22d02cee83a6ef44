package patch

import (
	"fmt"
	"regexp"
	"time"

	"smr-checker/core/check"
)

// DateLayout is the only accepted security patch date format.
const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Status classifies a single patch date.
type Status string

const (
	StatusOK            Status = "ok"
	StatusTooNew        Status = "too_new"
	StatusTooOld        Status = "too_old"
	StatusNotFound      Status = "not_found"
	StatusInvalidFormat Status = "invalid_format"
)

// Ordering classifies how the SMR date relates to the MR date.
type Ordering string

const (
	// OrderingPass means the SMR date is strictly later.
	OrderingPass Ordering = "pass"
	// OrderingEqual means both dates are the same day.
	OrderingEqual Ordering = "fail_equal"
	// OrderingOlder means the SMR date is earlier.
	OrderingOlder Ordering = "fail_older"
	// OrderingInvalidInput means at least one date failed validation.
	OrderingInvalidInput Ordering = "invalid_input"
)

// Validation is the result of checking one date against the window.
type Validation struct {
	// Input is the raw date string.
	Input string `json:"input"`

	// IsValid is true only for StatusOK.
	IsValid bool `json:"is_valid"`

	// Status is the classification.
	Status Status `json:"status"`

	// DayDelta is reference minus date in days. Negative means the date is in the future.
	// Nil when the input could not be parsed.
	DayDelta *int `json:"day_delta,omitempty"`

	// Date is the parsed date. Nil when the input could not be parsed.
	Date *time.Time `json:"date,omitempty"`

	// Message explains the status.
	Message string `json:"message"`
}

// Comparison is the result of validating an MR and an SMR date together.
type Comparison struct {
	// Reference is the calendar day the window was computed from.
	Reference time.Time `json:"reference"`

	// MR is the validation of the baseline date.
	MR Validation `json:"mr"`

	// SMR is the validation of the candidate date.
	SMR Validation `json:"smr"`

	// Ordering describes how the SMR date relates to the MR date.
	Ordering Ordering `json:"ordering"`

	// OrderingValid is true when both dates are valid and SMR is strictly later than MR.
	OrderingValid bool `json:"ordering_valid"`

	// AllChecksPassed is true when both dates are valid and OrderingValid holds.
	AllChecksPassed bool `json:"all_checks_passed"`
}

// Result maps AllChecksPassed to PASS or FAIL.
func (c Comparison) Result() check.Result {
	return check.FromBool(c.AllChecksPassed)
}

// FailReasons lists a reason for every failed part of the comparison.
func (c Comparison) FailReasons() []string {
	var reasons []string
	if !c.MR.IsValid {
		reasons = append(reasons, "MR "+c.MR.Message)
	}
	if !c.SMR.IsValid {
		reasons = append(reasons, "SMR "+c.SMR.Message)
	}
	switch c.Ordering {
	case OrderingEqual:
		reasons = append(reasons, "SMR security patch is equal to MR security patch")
	case OrderingOlder:
		reasons = append(reasons, "SMR security patch is older than MR security patch")
	}
	return reasons
}

// Validator checks patch dates against a configurable window.
type Validator struct {
	cfg Config
}

// NewValidator creates a validator. Unset window bounds fall back to the defaults.
func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg.normalized()}
}

// Window returns the effective window configuration.
func (v *Validator) Window() Config {
	return v.cfg
}

// ValidateDate checks one date string against the window around ref.
// Only the calendar day of ref is used.
func (v *Validator) ValidateDate(input string, ref time.Time) Validation {
	res := Validation{Input: input}

	if check.IsNotFound(input) {
		res.Status = StatusNotFound
		res.Message = "security patch date not found"
		return res
	}

	if !datePattern.MatchString(input) {
		res.Status = StatusInvalidFormat
		res.Message = fmt.Sprintf("security patch date %q is not YYYY-MM-DD", input)
		return res
	}

	date, err := time.Parse(DateLayout, input)
	if err != nil {
		res.Status = StatusInvalidFormat
		res.Message = fmt.Sprintf("security patch date %q is not a calendar date", input)
		return res
	}

	day := calendarDay(ref)
	delta := int(day.Sub(date).Hours() / 24)
	res.Date = &date
	res.DayDelta = &delta

	switch {
	case date.After(day.AddDate(0, 0, v.cfg.AheadDays)):
		res.Status = StatusTooNew
		res.Message = fmt.Sprintf("security patch %s is more than %d days after the reference date", input, v.cfg.AheadDays)
	case date.Before(day.AddDate(0, 0, -v.cfg.BehindDays)):
		res.Status = StatusTooOld
		res.Message = fmt.Sprintf("security patch %s is more than %d days before the reference date", input, v.cfg.BehindDays)
	default:
		res.IsValid = true
		res.Status = StatusOK
		if delta < 0 {
			res.Message = fmt.Sprintf("security patch %s is within the window (%d days ahead)", input, -delta)
		} else {
			res.Message = fmt.Sprintf("security patch %s is within the window (%d days ago)", input, delta)
		}
	}

	return res
}

// CompareDates validates both dates and requires the SMR date to be strictly
// later than the MR date.
func (v *Validator) CompareDates(mr, smr string, ref time.Time) Comparison {
	res := Comparison{
		Reference: calendarDay(ref),
		MR:        v.ValidateDate(mr, ref),
		SMR:       v.ValidateDate(smr, ref),
		Ordering:  OrderingInvalidInput,
	}

	if res.MR.IsValid && res.SMR.IsValid {
		switch {
		case res.SMR.Date.After(*res.MR.Date):
			res.Ordering = OrderingPass
			res.OrderingValid = true
		case res.SMR.Date.Equal(*res.MR.Date):
			res.Ordering = OrderingEqual
		default:
			res.Ordering = OrderingOlder
		}
	}

	res.AllChecksPassed = res.MR.IsValid && res.SMR.IsValid && res.OrderingValid
	return res
}

// ValidateDate checks a date with the default window.
func ValidateDate(input string, ref time.Time) Validation {
	return NewValidator(DefaultConfig()).ValidateDate(input, ref)
}

// CompareDates compares two dates with the default window.
func CompareDates(mr, smr string, ref time.Time) Comparison {
	return NewValidator(DefaultConfig()).CompareDates(mr, smr, ref)
}

// calendarDay truncates t to midnight UTC of its own calendar date.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
