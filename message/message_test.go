package message

import "testing"

func TestTypeConstants(t *testing.T) {
	if TypeCount != TypeMax+1 {
		t.Fatalf("TypeCount = %d, want TypeMax+1 = %d", TypeCount, TypeMax+1)
	}
}

func TestRingCapacityIsPowerOfTwo(t *testing.T) {
	if RingCapacity&(RingCapacity-1) != 0 {
		t.Fatalf("RingCapacity %d is not a power of two", RingCapacity)
	}
}

func TestMessageZeroValue(t *testing.T) {
	var m Message
	if m.MsgType != 0 || m.Sequence != 0 || m.ProcessorID != 0 {
		t.Fatal("zero-value Message should have all-zero fields")
	}
}
