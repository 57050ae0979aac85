package genie

import "testing"

func TestParseEightCharacterCode(t *testing.T) {
	code, err := Parse("ZEXPYGLA")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if code.Address != 0x94A7 {
		t.Errorf("Address = %#04x, want 0x94A7", code.Address)
	}
	if code.Value != 0x02 {
		t.Errorf("Value = %#02x, want 0x02", code.Value)
	}
	if code.Compare == nil || *code.Compare != 0x03 {
		t.Errorf("Compare = %v, want 0x03", code.Compare)
	}
}

func TestEightCharacterRoundTrip(t *testing.T) {
	code, err := Parse("ZEXPYGLA")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	again, err := Parse(code.String())
	if err != nil {
		t.Fatalf("Parse of re-encoded code failed: %v", err)
	}
	if again.Address != code.Address || again.Value != code.Value ||
		again.Compare == nil || *again.Compare != *code.Compare {
		t.Errorf("round trip mismatch: got %+v, want %+v", again, code)
	}
}

func TestSixCharacterRoundTrip(t *testing.T) {
	code, err := Parse("ZEXPYG")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if code.Compare != nil {
		t.Errorf("6-character code should have no Compare, got %v", code.Compare)
	}
	again, err := Parse(code.String())
	if err != nil {
		t.Fatalf("Parse of re-encoded code failed: %v", err)
	}
	if again != code {
		t.Errorf("round trip mismatch: got %+v, want %+v", again, code)
	}
}

func TestParseRejectsInvalidCharacters(t *testing.T) {
	if _, err := Parse("ZEXPY1"); err == nil {
		t.Fatal("expected error for invalid character")
	}
}

func TestParseRejectsWrongLength(t *testing.T) {
	if _, err := Parse("ZEXPY"); err == nil {
		t.Fatal("expected error for 5-character code")
	}
}

func TestApplyUnconditional(t *testing.T) {
	code := Code{Address: 0x8123, Value: 0x09}
	if got := code.Apply(0x8123, 0x01); got != 0x09 {
		t.Errorf("Apply = %#02x, want 0x09", got)
	}
	if got := code.Apply(0x8124, 0x01); got != 0x01 {
		t.Errorf("Apply at wrong address should pass through unchanged, got %#02x", got)
	}
}

func TestApplyConditional(t *testing.T) {
	compare := uint8(0x03)
	code := Code{Address: 0x94A7, Value: 0x02, Compare: &compare}
	if got := code.Apply(0x94A7, 0x03); got != 0x02 {
		t.Errorf("Apply with matching compare = %#02x, want 0x02", got)
	}
	if got := code.Apply(0x94A7, 0x04); got != 0x04 {
		t.Errorf("Apply with mismatched compare should pass through unchanged, got %#02x", got)
	}
}

func TestApplyFourAddressEqualToSixCharValue(t *testing.T) {
	code, err := Parse("ZEXPYG")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := code.Apply(code.Address, 0xFF); got != code.Value {
		t.Errorf("Apply = %#02x, want %#02x", got, code.Value)
	}
}
