// Package forecast derives demand projections from the assignment audit
// trail. It only reads claim records and tolerates eventually consistent
// snapshots, so it runs concurrently with live allocation traffic without
// coordination.
package forecast

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Deeksha-0406/LAMP/claims"
)

// ErrInsufficientHistory means there are not enough observed periods to fit
// a trend. The forecaster refuses to fabricate numbers from degenerate
// input.
var ErrInsufficientHistory = errors.New("insufficient assignment history")

// periodLayout buckets assignment dates by calendar month.
const periodLayout = "2006-01"

type Forecaster struct {
	claims *claims.Recorder
	logger *zap.Logger
}

func NewForecaster(rec *claims.Recorder, logger *zap.Logger) *Forecaster {
	return &Forecaster{claims: rec, logger: logger}
}

// Forecast maps an asset identifier to its projected assignment counts, one
// value per future period in order.
type Forecast map[string][]decimal.Decimal

// Project aggregates assignment counts per asset per calendar month, fits a
// least-squares linear trend over the period index and extends it
// periodsAhead months. Fewer than two observed periods across the whole
// history is degenerate input and yields ErrInsufficientHistory.
func (f *Forecaster) Project(ctx context.Context, periodsAhead int) (Forecast, error) {
	if periodsAhead < 1 {
		return nil, errors.New("periodsAhead must be at least 1")
	}

	history, err := f.claims.AssignmentHistory(ctx)
	if err != nil {
		return nil, err
	}

	// counts[assetID][period] = assignments opened in that month
	counts := map[string]map[string]int64{}
	periodSet := map[string]bool{}
	for _, asg := range history {
		period := asg.AssignedDate.UTC().Format(periodLayout)
		periodSet[period] = true
		assetID := asg.LaptopID.Hex()
		if counts[assetID] == nil {
			counts[assetID] = map[string]int64{}
		}
		counts[assetID][period]++
	}

	if len(periodSet) < 2 {
		return nil, ErrInsufficientHistory
	}

	periods := orderedPeriods(periodSet)

	result := Forecast{}
	for assetID, byPeriod := range counts {
		series := make([]decimal.Decimal, len(periods))
		for i, p := range periods {
			series[i] = decimal.NewFromInt(byPeriod[p])
		}
		result[assetID] = projectSeries(series, periodsAhead)
	}

	f.logger.Info("demand forecast generated",
		zap.Int("assets", len(result)),
		zap.Int("observedPeriods", len(periods)),
		zap.Int("periodsAhead", periodsAhead))
	return result, nil
}

// orderedPeriods returns every month between the earliest and latest
// observed period inclusive, so gaps count as zero demand rather than
// disappearing from the series.
func orderedPeriods(periodSet map[string]bool) []string {
	observed := make([]string, 0, len(periodSet))
	for p := range periodSet {
		observed = append(observed, p)
	}
	sort.Strings(observed)

	first, _ := time.Parse(periodLayout, observed[0])
	last, _ := time.Parse(periodLayout, observed[len(observed)-1])

	var periods []string
	for t := first; !t.After(last); t = t.AddDate(0, 1, 0) {
		periods = append(periods, t.Format(periodLayout))
	}
	return periods
}

// projectSeries fits y = slope*x + intercept by least squares over the
// observed series and evaluates it at the next periodsAhead indices.
// Negative projections clamp to zero; a count cannot go below that.
func projectSeries(series []decimal.Decimal, periodsAhead int) []decimal.Decimal {
	n := decimal.NewFromInt(int64(len(series)))
	sumX := decimal.Zero
	sumY := decimal.Zero
	sumXY := decimal.Zero
	sumXX := decimal.Zero

	for i, y := range series {
		x := decimal.NewFromInt(int64(i))
		sumX = sumX.Add(x)
		sumY = sumY.Add(y)
		sumXY = sumXY.Add(x.Mul(y))
		sumXX = sumXX.Add(x.Mul(x))
	}

	denom := n.Mul(sumXX).Sub(sumX.Mul(sumX))
	var slope decimal.Decimal
	if !denom.IsZero() {
		slope = n.Mul(sumXY).Sub(sumX.Mul(sumY)).Div(denom)
	}
	intercept := sumY.Sub(slope.Mul(sumX)).Div(n)

	out := make([]decimal.Decimal, periodsAhead)
	for k := 0; k < periodsAhead; k++ {
		x := decimal.NewFromInt(int64(len(series) + k))
		y := slope.Mul(x).Add(intercept)
		if y.IsNegative() {
			y = decimal.Zero
		}
		out[k] = y.Round(2)
	}
	return out
}
