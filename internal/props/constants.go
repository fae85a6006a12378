package props

// Physical constants, SI units. Read-only after initialization.
const (
	RGas = 8.314 // gas constant [J/(mol K)]

	// Molecular weights [kg/mol]
	MWCH4 = 16.04e-3
	MWH2  = 2.016e-3
	MWN2  = 28.01e-3
	MWC   = 12.01e-3

	// Standard conditions for gas volume reporting
	StdTemperature = 273.15  // K
	StdPressure    = 101325. // Pa
)
