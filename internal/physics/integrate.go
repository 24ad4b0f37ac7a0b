package physics

// Integrate advances s by one tick. The order is fixed: impulse injection,
// drift, velocity integration with friction and mass decay, spring return,
// stretch integration with decay, then offset accumulation scaled by dt.
func Integrate(s State, imp Impulse, dt float64, cfg *Config) State {
	s.WaveAcceleration += imp.Acceleration
	s.StretchVelocity += imp.StretchVelocity

	s.WaveAcceleration -= cfg.BaseLeftwardAcceleration

	s.WaveVelocity += s.WaveAcceleration
	s.WaveVelocity *= cfg.XFriction
	s.WaveAcceleration *= cfg.WaveMass

	s.WaveVelocity += (cfg.BaseSpeed - s.WaveVelocity) * cfg.XReturnForce

	s.StretchAmount += s.StretchVelocity
	s.StretchVelocity *= cfg.YFriction
	s.StretchAmount *= cfg.StretchDecay

	s.WaveXOffset += s.WaveVelocity * dt
	return s
}

// Run integrates n ticks with no pointer input.
func Run(s State, n int, cfg *Config) State {
	for i := 0; i < n; i++ {
		s = Integrate(s, Impulse{}, cfg.TimeUnit, cfg)
	}
	return s
}
