package scoring

import "errors"

// ErrConfiguration is returned when the weighting configuration would
// silently mis-score the population: a required feature key is missing,
// carries the wrong sign, or an unknown key is present.
var ErrConfiguration = errors.New("invalid scoring configuration")
