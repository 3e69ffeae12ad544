// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package accel

import "testing"

func TestRegisterResetValues(t *testing.T) {
	var rf registerFile
	rf.reset()
	for _, tc := range []struct {
		addr byte
		want byte
	}{
		{RegDevIDAD, 0xAD},
		{RegDevIDMST, 0x1D},
		{RegPartID, 0xF2},
		{RegRevID, 0x01},
		{RegStatus, 0x40},
		{RegFIFOSamples, 0x80},
		{RegFilterCtl, 0x13},
		{RegPowerCtl, 0x00},
	} {
		if got := rf.read(tc.addr); got != tc.want {
			t.Errorf("read(%#02x) = %#02x, want %#02x", tc.addr, got, tc.want)
		}
	}
}

func TestRegisterEcho(t *testing.T) {
	// Every read/write slot echoes what was written.
	var rf registerFile
	rf.reset()
	for addr := byte(0); addr <= RegLast; addr++ {
		if accessOf(addr) != regReadWrite {
			continue
		}
		for _, v := range []byte{0x00, 0x5A, 0xFF} {
			rf.write(addr, v)
			if got := rf.read(addr); got != v {
				t.Errorf("write/read %#02x: got %#02x, want %#02x", addr, got, v)
			}
		}
	}
}

func TestReadOnlySlotsIgnoreWrites(t *testing.T) {
	var rf registerFile
	rf.reset()
	rf.write(RegDevIDAD, 0x00)
	if got := rf.read(RegDevIDAD); got != 0xAD {
		t.Errorf("DEVID_AD = %#02x after host write, want 0xAD", got)
	}
	rf.write(RegStatus, 0xFF)
	if got := rf.read(RegStatus); got != 0x40 {
		t.Errorf("STATUS = %#02x after host write, want 0x40", got)
	}
}

func TestInternalWritePath(t *testing.T) {
	var rf registerFile
	rf.reset()
	rf.setInternal(RegXDataL, 0x12)
	if got := rf.read(RegXDataL); got != 0x12 {
		t.Errorf("XDATA_L = %#02x, want 0x12", got)
	}
	// The internal path never touches configuration slots.
	rf.setInternal(RegPowerCtl, 0x02)
	if got := rf.read(RegPowerCtl); got != 0 {
		t.Errorf("POWER_CTL = %#02x after internal write, want 0", got)
	}
}

func TestUnmappedAddresses(t *testing.T) {
	for _, addr := range []byte{0x04, 0x07, 0x16, 0x1E} {
		var rf registerFile
		rf.reset()
		rf.write(addr, 0xAB)
		if got := rf.read(addr); got != 0 {
			t.Errorf("reserved %#02x = %#02x, want 0", addr, got)
		}
	}
}

func TestWriteOnlySoftReset(t *testing.T) {
	var rf registerFile
	rf.reset()
	rf.write(RegSoftReset, SoftResetKey)
	if got := rf.read(RegSoftReset); got != 0 {
		t.Errorf("SOFT_RESET reads %#02x, want 0", got)
	}
	if !rf.softResetArmed() {
		t.Error("soft reset not armed after writing the key")
	}
	rf.reset()
	rf.write(RegSoftReset, 0x53)
	if rf.softResetArmed() {
		t.Error("soft reset armed by a non key value")
	}
}
