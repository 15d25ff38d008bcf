package reports

import (
	"errors"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Criteria is the typed form of a FilterState. Unset filters are zero values.
type Criteria struct {
	Text          string   `mapstructure:"q"`
	BranchID      string   `mapstructure:"branch_id"`
	CourseID      string   `mapstructure:"course_id"`
	Status        string   `mapstructure:"status"`
	DateRange     string   `mapstructure:"date_range"`
	StartDate     string   `mapstructure:"start_date"`
	EndDate       string   `mapstructure:"end_date"`
	MinAmount     *float64 `mapstructure:"min_amount"`
	MaxAmount     *float64 `mapstructure:"max_amount"`
	PaymentMethod string   `mapstructure:"payment_method"`
	Difficulty    string   `mapstructure:"difficulty"`
	Experience    string   `mapstructure:"experience"`

	Interval *Interval `mapstructure:"-"`
}

// FilterErrors maps filter keys to user-facing messages.
type FilterErrors map[string]string

func (e FilterErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "reports: invalid filters: " + strings.Join(parts, "; ")
}

// DecodeCriteria converts state into Criteria and resolves the date range
// against now. Values of "all" and empty strings leave the field unset.
func DecodeCriteria(state FilterState, now time.Time) (Criteria, error) {
	input := make(map[string]any, len(state))
	for k, v := range state {
		if v == "" || v == All {
			continue
		}
		input[k] = v
	}

	var c Criteria
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &c,
	})
	if err != nil {
		return Criteria{}, err
	}
	problems := FilterErrors{}
	if err := dec.Decode(input); err != nil {
		var merr *mapstructure.Error
		if !errors.As(err, &merr) {
			return Criteria{}, err
		}
		for _, msg := range merr.Errors {
			problems[offendingKey(msg, input)] = "Enter a number."
		}
		return Criteria{}, problems
	}

	for key, amount := range map[string]*float64{KeyMinAmount: c.MinAmount, KeyMaxAmount: c.MaxAmount} {
		if amount != nil && (math.IsNaN(*amount) || math.IsInf(*amount, 0)) {
			problems[key] = "Enter a number."
		}
	}
	if len(problems) > 0 {
		return c, problems
	}
	if c.MinAmount != nil && c.MaxAmount != nil && *c.MinAmount > *c.MaxAmount {
		problems[KeyMaxAmount] = "Must not be lower than the minimum."
	}
	interval, ok, err := Resolve(c.DateRange, c.StartDate, c.EndDate, now)
	switch {
	case errors.Is(err, ErrIncompleteRange):
		problems[KeyDateRange] = "Pick both a start and an end date."
	case errors.Is(err, ErrInvertedRange):
		problems[KeyEndDate] = "End date must not be before the start date."
	case errors.Is(err, ErrUnknownRange):
		problems[KeyDateRange] = "Unknown date range."
	case err != nil:
		problems[KeyDateRange] = "Use the format YYYY-MM-DD."
	case ok:
		c.Interval = &interval
	}
	if len(problems) > 0 {
		return c, problems
	}
	return c, nil
}

func offendingKey(msg string, input map[string]any) string {
	for k := range input {
		if strings.Contains(msg, "'"+k+"'") {
			return k
		}
	}
	return "general"
}

// Query encodes the criteria for the backend report endpoints. Date ranges are
// sent as resolved boundaries.
func (c Criteria) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set(KeyQuery, c.Text)
	set(KeyBranch, c.BranchID)
	set(KeyCourse, c.CourseID)
	set(KeyStatus, c.Status)
	set(KeyPaymentMethod, c.PaymentMethod)
	set(KeyDifficulty, c.Difficulty)
	set(KeyExperience, c.Experience)
	if c.MinAmount != nil {
		set(KeyMinAmount, strconv.FormatFloat(*c.MinAmount, 'f', -1, 64))
	}
	if c.MaxAmount != nil {
		set(KeyMaxAmount, strconv.FormatFloat(*c.MaxAmount, 'f', -1, 64))
	}
	if c.Interval != nil {
		set(KeyStartDate, c.Interval.Start.Format(DateLayout))
		set(KeyEndDate, c.Interval.End.Format(DateLayout))
	}
	return q
}
