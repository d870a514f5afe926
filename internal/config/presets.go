package config

// Named run configurations for quick starts.
var presets = map[string]*Config{
	"decay-tight": {
		System:    "decay",
		Stepper:   "adaptive",
		Dt:        0.001,
		Duration:  5.0,
		Tolerance: 1e-10,
		Norm:      "absolute",
		InitState: []float64{1.0},
	},
	"lorenz-chaos": {
		System:    "lorenz",
		Stepper:   "rk4",
		Dt:        0.005,
		Duration:  40.0,
		InitState: []float64{1.0, 1.0, 1.0},
	},
	"vanderpol-relaxed": {
		System:    "vanderpol",
		Stepper:   "adaptive",
		Dt:        0.01,
		Duration:  20.0,
		Tolerance: 1e-6,
		Norm:      "mixed",
		InitState: []float64{2.0, 0.0},
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.InitState = append([]float64(nil), p.InitState...)
	if cp.Tolerance == 0 {
		cp.Tolerance = DefaultTolerance
	}
	return &cp
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
