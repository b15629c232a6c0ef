package game

// RewardPolicy weighs a move by where it lands. Corners are stable and worth
// the most, edges come next, and X-squares hand the adjacent corner to the
// opponent so they earn nothing regardless of how many discs they flip.
// Flipped discs add to a tier's base but never lift it to the next tier.
type RewardPolicy struct {
	Corner  int `yaml:"corner" validate:"gtfield=Edge"`
	Edge    int `yaml:"edge" validate:"gtfield=Base"`
	Base    int `yaml:"base" validate:"gte=0"`
	XSquare int `yaml:"x_square" validate:"gte=0,ltefield=Base"`
}

func DefaultRewards() RewardPolicy {
	return RewardPolicy{
		Corner:  16,
		Edge:    6,
		Base:    1,
		XSquare: 0,
	}
}

// Tier classifies a square for rewarding.
type Tier int

const (
	Interior Tier = iota
	EdgeTier
	CornerTier
	XSquareTier
)

func (t Tier) String() string {
	switch t {
	case CornerTier:
		return "corner"
	case EdgeTier:
		return "edge"
	case XSquareTier:
		return "x-square"
	default:
		return "interior"
	}
}

func TierOf(s Square) Tier {
	onEdgeCol := s.Col == 1 || s.Col == Size
	onEdgeRow := s.Row == 1 || s.Row == Size
	switch {
	case onEdgeCol && onEdgeRow:
		return CornerTier
	case onEdgeCol || onEdgeRow:
		return EdgeTier
	case (s.Col == 2 || s.Col == Size-1) && (s.Row == 2 || s.Row == Size-1):
		return XSquareTier
	default:
		return Interior
	}
}

// Reward scores a move on s that flipped the given number of discs.
func (p RewardPolicy) Reward(s Square, flipped int) int {
	switch TierOf(s) {
	case CornerTier:
		return p.Corner + flipped
	case EdgeTier:
		return p.Edge + bonus(flipped, p.Corner-p.Edge)
	case XSquareTier:
		return p.XSquare
	default:
		return p.Base + bonus(flipped, p.Edge-p.Base)
	}
}

// bonus caps the flip count one below the gap to the next tier up.
func bonus(flipped, gap int) int {
	return max(0, min(flipped, gap-1))
}
