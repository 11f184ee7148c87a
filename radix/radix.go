// Package radix implements the decimal digit stream shared by the
// descriptor codec and the solution codec: a sequence of 256-bit words read as one
// long base-10 number, LSD first, using the mod/prev marker trick from the
// original on-chain encoder so digit extraction needs no big-integer
// division beyond the current scale.
package radix

import "github.com/holiman/uint256"

// Limit is MOD_LIMIT = 10^77 - 1, the largest scale this stream will grow
// to before rolling over to the next word. Above it a 256-bit word can no
// longer hold a full next decimal place.
var Limit = buildLimit()

var ten = uint256.NewInt(10)

func buildLimit() *uint256.Int {
	pow := uint256.NewInt(1)
	for i := 0; i < 77; i++ {
		pow.Mul(pow, ten)
	}
	return new(uint256.Int).Sub(pow, uint256.NewInt(1))
}

// Stream extracts base-10 digits, least-significant first, from the
// concatenation of Words[0], Words[1], ... Words[len(Words)-1].
//
// The source encoder tracks two markers, mod and prev, both starting at 1;
// each digit is (word mod 10*mod)/prev, after which prev and mod are both
// set to mod*10. Since prev and mod are always equal to each other after
// the first step (they're assigned the same value every time), one scale
// field is sufficient here; it plays both roles.
type Stream struct {
	Words []*uint256.Int
	word  int
	scale *uint256.Int
}

// NewStream builds a digit stream over words, in order, LSD-first.
func NewStream(words []*uint256.Int) *Stream {
	return &Stream{Words: words, scale: uint256.NewInt(1)}
}

// SetScale overrides the stream's starting scale for word 0, used by the
// solution codec to skip the 3-digit numMoves counter (scale = 1000) before
// streaming move digits, per the wire format's "markers start at mod = prev
// = 1000" rule. Callers must invoke it before the first Next/NextObject.
func (s *Stream) SetScale(scale *uint256.Int) {
	s.scale = new(uint256.Int).Set(scale)
}

// Next returns the next digit (0-9) in the stream, advancing to the next
// word when the current word's scale would exceed Limit. Next is total:
// once the stream runs past the last word it keeps returning 0 digits from
// an implicit zero word, so callers bound consumption themselves (the
// descriptor and solution decoders know exactly how many digits to read).
func (s *Stream) Next() uint8 {
	var word *uint256.Int
	if s.word < len(s.Words) {
		word = s.Words[s.word]
	} else {
		word = uint256.NewInt(0)
	}

	tenScale := new(uint256.Int).Mul(ten, s.scale)
	rem := new(uint256.Int).Mod(word, tenScale)
	digit := new(uint256.Int).Div(rem, s.scale)

	s.scale = tenScale
	if s.scale.Gt(Limit) {
		s.word++
		s.scale = uint256.NewInt(1)
	}

	return uint8(digit.Uint64())
}

// Object decodes a 3-digit (quadrant, y, x) tuple, LSD first, applying the
// quadrant-fold rule from the descriptor wire format: quadrant>2 with y<4
// adds 10 to y; an even quadrant adds 10 to x.
type Object struct {
	Quadrant uint8
	Y        uint8
	X        uint8
}

// NextObject consumes exactly three digits and applies the fold rule.
func (s *Stream) NextObject() Object {
	quadrant := s.Next()
	y := s.Next()
	x := s.Next()

	if quadrant > 2 && y < 4 {
		y += 10
	}
	if quadrant%2 == 0 {
		x += 10
	}

	return Object{Quadrant: quadrant, Y: y, X: x}
}

// SkipObject consumes three digit positions without interpreting them,
// used when a descriptor's start/exit triple is a placeholder (see
// descriptor.Decode) so later digits stay aligned.
func (s *Stream) SkipObject() {
	s.Next()
	s.Next()
	s.Next()
}

// Encoder is the inverse of Stream: it packs digits LSD-first into a fixed
// number of 256-bit words, used by the test-only Encode paths for the
// codec round-trip property: decode(encode(P)) == P.
type Encoder struct {
	words []*uint256.Int
	word  int
	scale *uint256.Int
}

// NewEncoder allocates an encoder for exactly numWords 256-bit words.
func NewEncoder(numWords int) *Encoder {
	words := make([]*uint256.Int, numWords)
	for i := range words {
		words[i] = uint256.NewInt(0)
	}
	return &Encoder{words: words, scale: uint256.NewInt(1)}
}

// Put writes the next digit (0-9) at the stream's current position.
func (e *Encoder) Put(digit uint8) {
	contribution := new(uint256.Int).Mul(uint256.NewInt(uint64(digit)), e.scale)
	e.words[e.word].Add(e.words[e.word], contribution)

	tenScale := new(uint256.Int).Mul(ten, e.scale)
	e.scale = tenScale
	if e.scale.Gt(Limit) {
		e.word++
		e.scale = uint256.NewInt(1)
	}
}

// PutDigits writes each digit in order.
func (e *Encoder) PutDigits(digits ...uint8) {
	for _, d := range digits {
		e.Put(d)
	}
}

// Words returns the packed 256-bit words.
func (e *Encoder) Words() []*uint256.Int {
	return e.words
}
