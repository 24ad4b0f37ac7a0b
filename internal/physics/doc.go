// Package physics implements the scalar spring/friction integrator that
// drives the wave background.
//
// There are no discrete states. [State] holds five scalars and is advanced
// exactly once per animation tick by [Integrate], a pure function:
//
//	s = physics.Integrate(s, pending, cfg.TimeUnit, cfg)
//	out := s.Outputs(cfg)
//
// Pointer movement reaches the integrator as an [Impulse], built with
// [ImpulseFromVelocity] and added into the accelerator fields before the
// next step. Horizontal motion only ever pushes the waves leftward; vertical
// motion stretches them in either direction.
package physics
