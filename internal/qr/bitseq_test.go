package qr

import "testing"

func TestBitSeqAppendGet(t *testing.T) {
	bs := NewBitSeq(4)
	bs.AppendBits(0b0100, 4)
	bs.AppendBits(0b10110011, 8)
	bs.AppendBits(0b101, 3)
	if got := bs.GetBits(0, 4); got != 0b0100 {
		t.Errorf("GetBits(0, 4) = %#b, want 0b0100", got)
	}
	if got := bs.GetBits(4, 8); got != 0b10110011 {
		t.Errorf("GetBits(4, 8) = %#b, want 0b10110011", got)
	}
	if got := bs.GetBits(12, 3); got != 0b101 {
		t.Errorf("GetBits(12, 3) = %#b, want 0b101", got)
	}
}

func TestBitSeqMSBFirst(t *testing.T) {
	bs := NewBitSeq(2)
	bs.AppendBits(1, 1)
	if bs.Bytes()[0] != 0x80 {
		t.Errorf("first appended bit should land in the MSB, got %#02x", bs.Bytes()[0])
	}
}

func TestBitSeqPushBit(t *testing.T) {
	bs := NewBitSeq(2)
	for _, b := range []bool{true, false, true, true, false, false, true, false, true} {
		bs.PushBit(b)
	}
	if bs.Bytes()[0] != 0b10110010 {
		t.Errorf("byte 0 = %#08b, want 0b10110010", bs.Bytes()[0])
	}
	if bs.Bytes()[1] != 0b10000000 {
		t.Errorf("byte 1 = %#08b, want 0b10000000", bs.Bytes()[1])
	}
	for i, want := range []bool{true, false, true, true, false, false, true, false, true} {
		if bs.Bit(i) != want {
			t.Errorf("Bit(%d) = %v, want %v", i, bs.Bit(i), want)
		}
	}
}

func TestBitSeqGet16AcrossBytes(t *testing.T) {
	bs := BitSeqFrom([]byte{0xAB, 0xCD, 0xEF})
	if got := bs.GetBits(4, 16); got != 0xBCDE {
		t.Errorf("GetBits(4, 16) = %#04x, want 0xBCDE", got)
	}
}

func TestBitSeqNextByteIdx(t *testing.T) {
	bs := NewBitSeq(4)
	bs.AppendBits(0x7, 3)
	if got := bs.NextByteIdx(); got != 1 {
		t.Errorf("NextByteIdx after 3 bits = %d, want 1", got)
	}
	bs.AppendBits(0x1F, 5)
	if got := bs.NextByteIdx(); got != 1 {
		t.Errorf("NextByteIdx after 8 bits = %d, want 1", got)
	}
	bs.PushBit(true)
	if got := bs.NextByteIdx(); got != 2 {
		t.Errorf("NextByteIdx after 9 bits = %d, want 2", got)
	}
}
