package radix

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestStream_SingleDigit(t *testing.T) {
	s := NewStream([]*uint256.Int{uint256.NewInt(7)})
	if got := s.Next(); got != 7 {
		t.Fatalf("Next() = %d, want 7", got)
	}
}

func TestStream_MultiDigitWithinWord(t *testing.T) {
	// 321 read LSD-first is 1, 2, 3.
	s := NewStream([]*uint256.Int{uint256.NewInt(321)})
	want := []uint8{1, 2, 3}
	for i, w := range want {
		if got := s.Next(); got != w {
			t.Fatalf("digit %d = %d, want %d", i, got, w)
		}
	}
}

func TestStream_PastEndOfWordsIsZero(t *testing.T) {
	s := NewStream([]*uint256.Int{uint256.NewInt(5)})
	s.Next() // consumes the only real digit
	for i := 0; i < 80; i++ {
		if got := s.Next(); got != 0 {
			t.Fatalf("digit %d past end = %d, want 0", i, got)
		}
	}
}

func TestEncoder_RoundTripManyDigits(t *testing.T) {
	digits := make([]uint8, 280) // one descriptor's worth of tile digits
	for i := range digits {
		digits[i] = uint8((i*7 + 3) % 6)
	}

	enc := NewEncoder(4)
	enc.PutDigits(digits...)

	dec := NewStream(enc.Words())
	for i, want := range digits {
		if got := dec.Next(); got != want {
			t.Fatalf("digit %d = %d, want %d", i, got, want)
		}
	}
}

func TestEncoder_CrossesWordBoundary(t *testing.T) {
	// MOD_LIMIT caps a word at 77 decimal places; pushing 80 digits through
	// must spill into the second word and still round-trip.
	digits := make([]uint8, 80)
	for i := range digits {
		digits[i] = uint8(i % 10)
	}

	enc := NewEncoder(2)
	enc.PutDigits(digits...)

	if enc.Words()[1].IsZero() {
		t.Fatalf("expected overflow into second word, got zero")
	}

	dec := NewStream(enc.Words())
	for i, want := range digits {
		if got := dec.Next(); got != want {
			t.Fatalf("digit %d = %d, want %d", i, got, want)
		}
	}
}

func TestObject_FoldQuadrant3YUnder4(t *testing.T) {
	// digits (quadrant=3, y=2, x=5) LSD-first -> quadrant>2 && y<4 => y+=10
	enc := NewEncoder(1)
	enc.PutDigits(3, 2, 5)

	s := NewStream(enc.Words())
	obj := s.NextObject()

	if obj.Quadrant != 3 || obj.Y != 12 || obj.X != 5 {
		t.Fatalf("got %+v, want {Quadrant:3 Y:12 X:5}", obj)
	}
}

func TestObject_FoldEvenQuadrantAddsX(t *testing.T) {
	// quadrant=2 (even) => x += 10; y<4 but quadrant not >2 so no y fold.
	enc := NewEncoder(1)
	enc.PutDigits(2, 1, 3)

	s := NewStream(enc.Words())
	obj := s.NextObject()

	if obj.Quadrant != 2 || obj.Y != 1 || obj.X != 13 {
		t.Fatalf("got %+v, want {Quadrant:2 Y:1 X:13}", obj)
	}
}

func TestObject_NoFoldQuadrant1(t *testing.T) {
	enc := NewEncoder(1)
	enc.PutDigits(1, 9, 9)

	s := NewStream(enc.Words())
	obj := s.NextObject()

	if obj.Quadrant != 1 || obj.Y != 9 || obj.X != 9 {
		t.Fatalf("got %+v, want {Quadrant:1 Y:9 X:9}", obj)
	}
}

func TestObject_Quadrant4YAbove4NoYFold(t *testing.T) {
	// quadrant>2 but y>=4, so the y+=10 fold does not apply; x+=10 still does
	// (quadrant 4 is even).
	enc := NewEncoder(1)
	enc.PutDigits(4, 7, 2)

	s := NewStream(enc.Words())
	obj := s.NextObject()

	if obj.Quadrant != 4 || obj.Y != 7 || obj.X != 12 {
		t.Fatalf("got %+v, want {Quadrant:4 Y:7 X:12}", obj)
	}
}

func TestStream_SkipObjectAdvancesThreeDigits(t *testing.T) {
	enc := NewEncoder(1)
	enc.PutDigits(1, 2, 3, 9)

	s := NewStream(enc.Words())
	s.SkipObject()
	if got := s.Next(); got != 9 {
		t.Fatalf("digit after skip = %d, want 9", got)
	}
}

func TestLimit_IsOneLessThanTenToSeventySeven(t *testing.T) {
	plusOne := new(uint256.Int).AddUint64(Limit, 1)
	// plusOne should be exactly 10^77: dividing by 10, 77 times, reaches 1.
	cur := new(uint256.Int).Set(plusOne)
	for i := 0; i < 77; i++ {
		cur.Div(cur, ten)
	}
	if !cur.Eq(uint256.NewInt(1)) {
		t.Fatalf("Limit+1 is not 10^77")
	}
}
