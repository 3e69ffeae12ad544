// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package accel

import (
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

func TestPortConnect(t *testing.T) {
	c := newTestCore(t, nil)
	p := NewPort(c)
	if _, err := p.Connect(physic.MegaHertz, spi.Mode1, 8); err == nil {
		t.Error("mode 1 accepted")
	}
	if _, err := p.Connect(physic.MegaHertz, spi.Mode0, 16); err == nil {
		t.Error("16 bit words accepted")
	}
	s, err := p.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		t.Fatal(err)
	}
	if s.Duplex() != conn.Full {
		t.Errorf("duplex = %s, want full", s.Duplex())
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err == nil {
		t.Error("double close accepted")
	}
	if err := s.Tx([]byte{0}, nil); err == nil {
		t.Error("Tx accepted on a closed port")
	}
}

func TestPortMismatchedBuffers(t *testing.T) {
	c := newTestCore(t, nil)
	s, err := NewPort(c).Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Tx([]byte{1, 2}, make([]byte, 3)); err == nil {
		t.Error("mismatched buffer sizes accepted")
	}
}

func TestPortTxPacketsKeepCS(t *testing.T) {
	c := newTestCore(t, nil)
	s, err := NewPort(c).Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		t.Fatal(err)
	}
	// Split one register read across two packets held under one chip
	// select; the device must treat it as a single transaction.
	r := make([]byte, 2)
	pkts := []spi.Packet{
		{W: []byte{CmdReadRegister, RegPartID}, KeepCS: true},
		{R: r},
	}
	if err := s.TxPackets(pkts); err != nil {
		t.Fatal(err)
	}
	if r[0] != 0xF2 {
		t.Errorf("PARTID = %#02x, want 0xF2", r[0])
	}
}
