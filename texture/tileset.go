package texture

import "math"

// DefaultTileSetSpeed is the frame duration, in seconds, of a new TileSet.
const DefaultTileSetSpeed = 0.5

// TileSet is a texture whose sprites are the frames of an animation.
type TileSet struct {
	*Texture

	speed float64
}

// NewTileSet wraps t with the default frame speed.
func NewTileSet(t *Texture) *TileSet {
	return &TileSet{Texture: t, speed: DefaultTileSetSpeed}
}

// DecodeTileSet decodes data as an image and wraps it in a TileSet.
func DecodeTileSet(data []byte) (*TileSet, error) {
	t, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return NewTileSet(t), nil
}

// Speed returns the frame duration in seconds.
func (ts *TileSet) Speed() float64 { return ts.speed }

// SetSpeed sets the frame duration in seconds. Non-positive values are ignored.
func (ts *TileSet) SetSpeed(seconds float64) {
	if seconds > 0 {
		ts.speed = seconds
	}
}

// Frame returns the sprite shown at elapsed seconds, cycling through the
// given frame names. It returns false if names is empty, elapsed is negative
// or not finite, or a name is unknown.
func (ts *TileSet) Frame(names []string, elapsed float64) (Sprite, bool) {
	if len(names) == 0 || elapsed < 0 {
		return Sprite{}, false
	}
	// Reduce in float space; the frame number may exceed the int range.
	frame := math.Floor(elapsed / ts.speed)
	if math.IsInf(frame, 0) || math.IsNaN(frame) {
		return Sprite{}, false
	}
	i := int(math.Mod(frame, float64(len(names))))
	return ts.Sprite(names[i])
}
