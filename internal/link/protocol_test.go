package link

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		b      byte
		kind   Kind
		column int
	}{
		{"attack side", 'A', KindSide, 0},
		{"defend side", 'D', KindSide, 0},
		{"round over", 'R', KindRoundOver, 0},
		{"game over", 'G', KindGameOver, 0},
		{"ball column 0", 0, KindBall, 6},
		{"ball column 2", 2, KindBall, 4},
		{"ball column at field width", FieldWidth, KindBall, 0},
		{"just past field width", FieldWidth + 1, KindInvalid, 0},
		{"lowercase letter", 'a', KindInvalid, 0},
		{"high byte", 0xff, KindInvalid, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := Decode(tc.b)
			if msg.Kind != tc.kind {
				t.Fatalf("Decode(%d).Kind = %v, expected %v", tc.b, msg.Kind, tc.kind)
			}
			if msg.Raw != tc.b {
				t.Errorf("Decode(%d).Raw = %d, expected %d", tc.b, msg.Raw, tc.b)
			}
			if tc.kind == KindBall && msg.Column != tc.column {
				t.Errorf("Decode(%d).Column = %d, expected %d", tc.b, msg.Column, tc.column)
			}
			if tc.kind == KindSide && msg.Side != tc.b {
				t.Errorf("Decode(%d).Side = %c, expected %c", tc.b, msg.Side, tc.b)
			}
		})
	}
}

func TestBallRoundTripMirrors(t *testing.T) {
	for col := 0; col <= FieldWidth; col++ {
		b, err := EncodeBall(col)
		if err != nil {
			t.Fatalf("EncodeBall(%d) failed: %v", col, err)
		}
		if int(b) != col {
			t.Errorf("EncodeBall(%d) = %d, expected the sender-frame column", col, b)
		}
		if got := Decode(b).Column; got != FieldWidth-col {
			t.Errorf("Decode(EncodeBall(%d)).Column = %d, expected %d", col, got, FieldWidth-col)
		}
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	if _, err := EncodeBall(-1); err == nil {
		t.Error("EncodeBall(-1) should fail")
	}
	if _, err := EncodeBall(FieldWidth + 1); err == nil {
		t.Errorf("EncodeBall(%d) should fail", FieldWidth+1)
	}
	if _, err := EncodeSide('X'); err == nil {
		t.Error("EncodeSide('X') should fail")
	}
	if b, err := EncodeSide(SideDefend); err != nil || b != 'D' {
		t.Errorf("EncodeSide('D') = %q, %v", b, err)
	}
}

func TestComplement(t *testing.T) {
	if Complement(SideAttack) != SideDefend {
		t.Error("Complement('A') should be 'D'")
	}
	if Complement(SideDefend) != SideAttack {
		t.Error("Complement('D') should be 'A'")
	}
}

func TestMessageBytesDoNotOverlapColumns(t *testing.T) {
	for _, b := range []byte{SideAttack, SideDefend, RoundOver, GameOver} {
		if int(b) <= FieldWidth {
			t.Errorf("message byte %q collides with ball columns", b)
		}
	}
}
