package hydraulics

import "gonum.org/v1/gonum/interp"

// Saturation vapor pressure of water in Pa, tabulated every 5 degC
// between 0 and 100 degC.
var (
	vaporTempC = []float64{
		0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50,
		55, 60, 65, 70, 75, 80, 85, 90, 95, 100,
	}
	vaporPa = []float64{
		611, 872, 1228, 1705, 2338, 3169, 4246, 5628, 7384, 9593, 12349,
		15758, 19946, 25043, 31201, 38595, 47414, 57867, 70182, 84608, 101325,
	}
)

var vaporCurve interp.PiecewiseLinear

func init() {
	if err := vaporCurve.Fit(vaporTempC, vaporPa); err != nil {
		panic(err) // fixed, strictly increasing table
	}
}

// VaporPressure returns the saturation vapor pressure of water in Pa at
// tempC degrees Celsius, linearly interpolated between table points.
// Temperatures outside [0, 100] clamp to the table ends.
func VaporPressure(tempC float64) float64 {
	if tempC <= vaporTempC[0] {
		return vaporPa[0]
	}
	if tempC >= vaporTempC[len(vaporTempC)-1] {
		return vaporPa[len(vaporPa)-1]
	}
	return vaporCurve.Predict(tempC)
}
