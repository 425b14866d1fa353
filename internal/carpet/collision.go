package carpet

// Hitbox insets. The carpet box is tighter at the top so head-level hits register
// earlier than hits on the carpet edge below.
const (
	playerInsetX      = 30.0
	playerInsetTop    = 15.0
	playerInsetBottom = 30.0
	obstacleInset     = 10.0

	// minOverlap is how deep two boxes must overlap on each axis to count as a hit.
	minOverlap = 10.0
)

// box is an axis-aligned rectangle given by its edges.
type box struct {
	left, right, top, bottom float64
}

func (p Player) hitbox() box {
	return box{
		left:   p.X + playerInsetX,
		right:  p.X + p.Size - playerInsetX,
		top:    p.Y + playerInsetTop,
		bottom: p.Y + p.Size - playerInsetBottom,
	}
}

func (o Obstacle) hitbox() box {
	return box{
		left:   o.X + obstacleInset,
		right:  o.X + o.Size - obstacleInset,
		top:    o.Y + obstacleInset,
		bottom: o.Y + o.Size - obstacleInset,
	}
}

// overlaps reports strict overlap on both axes. Touching edges do not overlap.
func (b box) overlaps(o box) bool {
	return b.left < o.right && b.right > o.left &&
		b.top < o.bottom && b.bottom > o.top
}

// overlap returns the intersection extent on each axis.
func (b box) overlap(o box) (float64, float64) {
	x := min(b.right, o.right) - max(b.left, o.left)
	y := min(b.bottom, o.bottom) - max(b.top, o.top)
	return x, y
}

// Collides reports whether the obstacle hits the player. Both inset boxes must
// overlap and the overlap must exceed minOverlap on both axes, so grazing contact
// is ignored.
func Collides(p Player, o Obstacle) bool {
	pb, ob := p.hitbox(), o.hitbox()
	if !pb.overlaps(ob) {
		return false
	}
	dx, dy := pb.overlap(ob)
	return dx > minOverlap && dy > minOverlap
}
