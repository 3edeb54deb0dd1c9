package kernel

import (
	"errors"

	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

var (
	minRatingAverage = decimal.Zero
	maxRatingAverage = decimal.NewFromInt(MaxRatingScore)
)

// Rating is the running average of scores received by a business or a
// courier, kept with two decimals together with the number of scores.
type Rating struct {
	average decimal.Decimal
	count   int
}

// NewRating restores a rating. The average must be within [0..5] and the
// count must not be negative; an unrated subject has (0, 0).
func NewRating(average decimal.Decimal, count int) (Rating, error) {
	var errList []error
	if average.LessThan(minRatingAverage) || average.GreaterThan(maxRatingAverage) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("rating average", average, 0, MaxRatingScore))
	}
	if count < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("rating count", count, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return Rating{}, err
	}

	return Rating{average: average.Round(2), count: count}, nil
}

func (r Rating) Average() decimal.Decimal {
	return r.average
}

func (r Rating) Count() int {
	return r.count
}

// Add folds a new score into the average:
//
//	(average*count + score) / (count + 1), rounded to 2 decimals
//
// e.g. {4.8, 152} + 5 gives {4.80, 153}.
func (r Rating) Add(score int) (Rating, error) {
	if score < MinRatingScore || score > MaxRatingScore {
		return Rating{}, errs.NewValueIsOutOfRangeError("score", score, MinRatingScore, MaxRatingScore)
	}

	newCount := r.count + 1
	total := r.average.Mul(decimal.NewFromInt(int64(r.count))).Add(decimal.NewFromInt(int64(score)))

	return Rating{
		average: total.Div(decimal.NewFromInt(int64(newCount))).Round(2),
		count:   newCount,
	}, nil
}
