package gekko

import (
	"time"
)

type Time struct {
	Time time.Time
	Dt   time.Duration

	// FixedStep, when set, replaces the wall clock with a constant frame time.
	FixedStep time.Duration

	stepped bool
	next    time.Duration
}

// DeltaSeconds is the last frame time in seconds.
func (t *Time) DeltaSeconds() float32 {
	return float32(t.Dt.Seconds())
}

func (t *Time) step(dt time.Duration) {
	t.stepped = true
	t.next = dt
}

type TimeModule struct {
	FixedStep time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time:      time.Now(),
		Dt:        0,
		FixedStep: mod.FixedStep,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(timeResource *Time) {
	switch {
	case timeResource.stepped:
		timeResource.stepped = false
		timeResource.Dt = timeResource.next
		timeResource.Time = timeResource.Time.Add(timeResource.next)
	case timeResource.FixedStep > 0:
		timeResource.Dt = timeResource.FixedStep
		timeResource.Time = timeResource.Time.Add(timeResource.FixedStep)
	default:
		now := time.Now()
		timeResource.Dt = now.Sub(timeResource.Time)
		timeResource.Time = now
	}
}
