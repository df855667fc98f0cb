package level

// TileType is the static classification of a grid cell.
type TileType int

const (
	TileWall TileType = iota
	TileFloor
	TileTarget
	TilePlayerStart
)

// String returns a human-readable name for the tile type.
func (t TileType) String() string {
	switch t {
	case TileWall:
		return "Wall"
	case TileFloor:
		return "Floor"
	case TileTarget:
		return "Target"
	case TilePlayerStart:
		return "PlayerStart"
	default:
		return "Unknown"
	}
}

// Walkable reports whether an entity may stand on this tile type.
func (t TileType) Walkable() bool {
	return t == TileFloor || t == TileTarget || t == TilePlayerStart
}

// Tile is one grid cell: its type plus the dynamic box and target flags.
// HasBox and IsTarget are independent of Type and of each other.
type Tile struct {
	Type     TileType
	HasBox   bool
	IsTarget bool
}

// Grid legend for level definitions.
const (
	CharWall         = '#'
	CharFloor        = ' '
	CharPlayer       = '@'
	CharBox          = '$'
	CharTarget       = '.'
	CharBoxOnTarget  = '*'
	CharPlayerTarget = '+'
)

// tileFromChar decodes a legend character. player reports whether the
// character marks the player start.
func tileFromChar(r rune) (tile Tile, player bool) {
	switch r {
	case CharWall:
		return Tile{Type: TileWall}, false
	case CharPlayer:
		return Tile{Type: TilePlayerStart}, true
	case CharBox:
		return Tile{Type: TileFloor, HasBox: true}, false
	case CharTarget:
		return Tile{Type: TileTarget, IsTarget: true}, false
	case CharBoxOnTarget:
		return Tile{Type: TileTarget, IsTarget: true, HasBox: true}, false
	case CharPlayerTarget:
		return Tile{Type: TileTarget, IsTarget: true}, true
	default:
		return Tile{Type: TileFloor}, false
	}
}

// char encodes a tile back to the legend. The player is not part of the
// grid, so '@' and '+' are only produced when withPlayer is set and the
// cell holds no box.
func (t Tile) char(withPlayer bool) rune {
	switch {
	case t.Type == TileWall:
		return CharWall
	case t.HasBox && t.IsTarget:
		return CharBoxOnTarget
	case t.HasBox:
		return CharBox
	case withPlayer && t.IsTarget:
		return CharPlayerTarget
	case withPlayer:
		return CharPlayer
	case t.IsTarget:
		return CharTarget
	default:
		return CharFloor
	}
}
