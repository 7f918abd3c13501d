package tractor

// Heading is the direction the tractor faces and moves in.
type Heading int

const (
	HeadingEast Heading = iota
	HeadingSouth
	HeadingWest
	HeadingNorth
)

// Opposite returns the heading rotated by 180 degrees.
func (h Heading) Opposite() Heading {
	return (h + 2) % 4
}

// Delta returns the (row, col) offset of one step in this heading.
func (h Heading) Delta() (dr, dc int) {
	switch h {
	case HeadingEast:
		return 0, 1
	case HeadingSouth:
		return 1, 0
	case HeadingWest:
		return 0, -1
	case HeadingNorth:
		return -1, 0
	}
	return 0, 0
}

func (h Heading) String() string {
	switch h {
	case HeadingEast:
		return "east"
	case HeadingSouth:
		return "south"
	case HeadingWest:
		return "west"
	case HeadingNorth:
		return "north"
	default:
		return "unknown"
	}
}

// Tractor is the player's vehicle.
type Tractor struct {
	Pos     Pos
	Heading Heading
}

// EndReason tells why a run ended.
type EndReason int

const (
	EndNone EndReason = iota
	EndBoundaryCollision
	EndObstacleCollision
	EndFieldComplete
)

// String returns the human-readable reason shown on the game-over screen.
func (r EndReason) String() string {
	switch r {
	case EndBoundaryCollision:
		return "boundary collision"
	case EndObstacleCollision:
		return "obstacle collision"
	case EndFieldComplete:
		return "field complete"
	default:
		return "none"
	}
}

// Track keeps the most recent tractor positions, oldest first.
type Track struct {
	limit     int
	positions []Pos
}

// NewTrack creates a track holding at most limit positions.
func NewTrack(limit int) *Track {
	return &Track{limit: limit}
}

// Push appends a position and evicts the oldest ones beyond the limit.
func (t *Track) Push(p Pos) {
	if t.limit <= 0 {
		return
	}
	t.positions = append(t.positions, p)
	if over := len(t.positions) - t.limit; over > 0 {
		t.positions = append(t.positions[:0], t.positions[over:]...)
	}
}

// Len returns the number of stored positions.
func (t *Track) Len() int {
	return len(t.positions)
}

// Positions returns a copy of the stored positions.
func (t *Track) Positions() []Pos {
	return append([]Pos(nil), t.positions...)
}

// MoveOutcome is the result of one move attempt.
type MoveOutcome struct {
	Collision     EndReason // EndNone when the move succeeded
	Prior         Tile      // destination tile before the tractor entered it
	Points        int
	SpeedModifier float64
	PowerUp       PowerUp
	Collected     bool
}

// Controller owns the tractor position, the buffered heading and the track.
type Controller struct {
	tractor Tractor
	pending Heading
	track   *Track
	rules   ScoreRules
}

// NewController places the tractor at spawn facing heading.
func NewController(spawn Pos, heading Heading, trackLimit int, rules ScoreRules) *Controller {
	return &Controller{
		tractor: Tractor{Pos: spawn, Heading: heading},
		pending: heading,
		track:   NewTrack(trackLimit),
		rules:   rules,
	}
}

// Tractor returns the current tractor.
func (c *Controller) Tractor() Tractor {
	return c.tractor
}

// Pending returns the heading that the next move will use.
func (c *Controller) Pending() Heading {
	return c.pending
}

// Track returns the trail of recent positions.
func (c *Controller) Track() *Track {
	return c.track
}

// Steer buffers a heading for the next move. A heading that is the exact
// opposite of the current one is rejected.
func (c *Controller) Steer(h Heading) bool {
	if h == c.tractor.Heading.Opposite() {
		return false
	}
	c.pending = h
	return true
}

// Advance moves one cell in the buffered heading.
func (c *Controller) Advance(f *Field, weather Weather, double bool) MoveOutcome {
	return c.AttemptMove(f, c.tractor.Pos.Step(c.pending), weather, double)
}

// AttemptMove tries to drive onto target using the buffered heading.
// A collision leaves the field and the tractor untouched.
func (c *Controller) AttemptMove(f *Field, target Pos, weather Weather, double bool) MoveOutcome {
	if !f.IsInterior(target) {
		return MoveOutcome{Collision: EndBoundaryCollision}
	}
	prior := f.TileAt(target)
	if prior == TileObstacle {
		return MoveOutcome{Collision: EndObstacleCollision, Prior: prior}
	}

	from := c.tractor.Pos
	c.track.Push(from)
	f.SetTile(from, TilePlowed)

	out := MoveOutcome{
		Prior:         prior,
		Points:        c.rules.TilePoints(prior, weather == WeatherSunny, double),
		SpeedModifier: c.rules.SpeedModifier(prior),
	}
	out.PowerUp, out.Collected = f.PowerUpAt(target)

	f.SetTile(target, TileTractor)
	c.tractor = Tractor{Pos: target, Heading: c.pending}
	return out
}
