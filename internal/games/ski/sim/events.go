package sim

// EventKind enumerates notable things that happen during a tick.
type EventKind int

const (
	EventSectionStarted EventKind = iota
	EventGatePassed
	EventSectionCompleted
	EventCrashed
	EventGameOver
	EventMenu
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSectionStarted:
		return "section-started"
	case EventGatePassed:
		return "gate-passed"
	case EventSectionCompleted:
		return "section-completed"
	case EventCrashed:
		return "crashed"
	case EventGameOver:
		return "game-over"
	case EventMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// Event is emitted by Session.Tick for hosts to react to (HUD messages,
// sounds, logging).
type Event struct {
	Kind    EventKind
	Section int
	Gate    GateType
	Points  int // bonus awarded; for section completion the whole flushed pot
	Score   int // run score at crash and game over
}

// Snapshot is the read-only per-tick telemetry for hosts.
type Snapshot struct {
	Phase         Phase
	Camera        CameraMode
	Score         int
	Best          int
	Total         int
	Alive         bool
	Crashed       bool
	CrashProgress float64
	Speed         float64
	MaxSpeed      float64
	Distance      float64
	BonusPot      int
	Position      [3]float64
	SteerVelocity float64
	Roll          float64
	Yaw           float64
	Skin          string
}

// Snapshot captures the values hosts display.
func (s *Session) Snapshot() Snapshot {
	p := &s.ctx.Player
	run := &s.ctx.Run
	crash := 0.0
	if run.Crashed {
		crash = min(1, run.CrashElapsed/s.cfg.Session.CrashDuration)
	}
	return Snapshot{
		Phase:         s.phase,
		Camera:        s.camera,
		Score:         run.Score,
		Best:          s.progress.BestScore,
		Total:         s.progress.TotalScore,
		Alive:         run.Alive,
		Crashed:       run.Crashed,
		CrashProgress: crash,
		Speed:         p.Speed,
		MaxSpeed:      s.kin.Ceiling(p),
		Distance:      p.Distance(),
		BonusPot:      run.BonusPot,
		Position:      [3]float64{p.Position.X, p.Position.Y, p.Position.Z},
		SteerVelocity: p.SteerVelocity,
		Roll:          p.Roll,
		Yaw:           p.Yaw,
		Skin:          s.progress.EquippedCosmeticID,
	}
}
