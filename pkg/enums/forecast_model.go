package enums

import "fmt"

// ForecastModel selects how historical samples are blended into a forecast.
type ForecastModel string

const (
	ForecastSimpleAverage   ForecastModel = "simple-average"
	ForecastWeightedAverage ForecastModel = "weighted-average"
)

var validForecastModels = []ForecastModel{
	ForecastSimpleAverage,
	ForecastWeightedAverage,
}

// String implements fmt.Stringer.
func (f ForecastModel) String() string {
	return string(f)
}

// IsValid reports whether the value is known.
func (f ForecastModel) IsValid() bool {
	for _, candidate := range validForecastModels {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseForecastModel converts raw input into a ForecastModel.
func ParseForecastModel(value string) (ForecastModel, error) {
	for _, candidate := range validForecastModels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid forecast model %q", value)
}
