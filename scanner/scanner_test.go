package scanner

import "testing"

func TestScanLiteralsAndMetachars(t *testing.T) {
	toks, err := New("a(b|c)*").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds := []TokenKind{
		TokChar, TokLeftParen, TokChar, TokUnion, TokChar, TokRightParen, TokStar, TokEOF,
	}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantKinds), toks)
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %v want %v", i, toks[i].Kind, k)
		}
	}
}

func TestScanCharClass(t *testing.T) {
	toks, err := New("[a-z^]").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds := []TokenKind{
		TokLeftBracket, TokChar, TokHyphen, TokChar, TokCaret, TokRightBracket, TokEOF,
	}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens: %+v", len(toks), toks)
	}
}

func TestScanRepeatExact(t *testing.T) {
	toks, err := New("a{3}").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[1].Kind != TokRepeat || *toks[1].Min != 3 || *toks[1].Max != 3 {
		t.Fatalf("unexpected repeat token: %+v", toks[1])
	}
}

func TestScanRepeatRangeForms(t *testing.T) {
	cases := []struct {
		pattern string
		wantMin *int
		wantMax *int
	}{
		{"a{2,5}", intPtr(2), intPtr(5)},
		{"a{2,}", intPtr(2), nil},
		{"a{,5}", nil, intPtr(5)},
	}

	for _, c := range cases {
		toks, err := New(c.pattern).Scan()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.pattern, err)
		}
		tok := toks[1]
		if tok.Kind != TokRepeatRange {
			t.Fatalf("%s: expected TokRepeatRange, got %v", c.pattern, tok.Kind)
		}
		if !intPtrEqual(tok.Min, c.wantMin) || !intPtrEqual(tok.Max, c.wantMax) {
			t.Fatalf("%s: got min=%v max=%v", c.pattern, derefOrNil(tok.Min), derefOrNil(tok.Max))
		}
	}
}

func TestScanMalformedRepeat(t *testing.T) {
	_, err := New("a{").Scan()
	if err == nil {
		t.Fatal("expected error for unterminated repeat")
	}
}

func TestScanRejectsNonASCII(t *testing.T) {
	_, err := New(string([]byte{200})).Scan()
	if err == nil {
		t.Fatal("expected error for byte > 127")
	}
}

func intPtr(n int) *int { return &n }

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func derefOrNil(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
