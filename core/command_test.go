package core

import (
	"testing"

	"lcdlink/protocol"
)

func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()

	var called bool
	registry.Register(protocol.TagClear, "clear", func(p protocol.Packet, display DisplayDriver) error {
		called = true
		return nil
	})

	cmd, ok := registry.GetCommand(protocol.TagClear)
	if !ok {
		t.Fatal("Failed to retrieve registered command")
	}
	if cmd.Name != "clear" {
		t.Errorf("Expected command name 'clear', got '%s'", cmd.Name)
	}

	if err := registry.Dispatch(protocol.Clear{}, &recordingDisplay{}); err != nil {
		t.Errorf("Dispatch failed: %v", err)
	}
	if !called {
		t.Error("Command handler was not called")
	}

	// Unregistered tag
	if err := registry.Dispatch(protocol.PrintGlyph{Index: 1}, &recordingDisplay{}); err == nil {
		t.Error("Expected error for unregistered tag")
	}
}

func TestDisplayRegistry(t *testing.T) {
	registry := NewDisplayRegistry()

	if registry.Count() != 6 {
		t.Errorf("Expected 6 commands (idle + 5 display), got %d", registry.Count())
	}

	display := &recordingDisplay{}
	packets := []protocol.Packet{
		protocol.Idle{},
		protocol.Clear{},
		protocol.SetCursor{Row: 1, Column: 4},
		protocol.NewPrint("HI"),
		protocol.PrintGlyph{Index: 2},
		protocol.CreateGlyph{Index: 7, Bitmap: [8]byte{1, 2, 3, 4, 5, 6, 7, 8}},
	}
	for _, p := range packets {
		if err := registry.Dispatch(p, display); err != nil {
			t.Errorf("Dispatch %s failed: %v", p.Tag(), err)
		}
	}

	want := `clear() set_cursor(1,4) print("HI") print_glyph(2) define_glyph(7,01 02 03 04 05 06 07 08)`
	if display.String() != want {
		t.Errorf("Unexpected driver calls:\n got: %s\nwant: %s", display, want)
	}
}

func TestHandlerRejectsWrongVariant(t *testing.T) {
	registry := NewDisplayRegistry()
	registry.Register(protocol.TagPrint, "print", handleSetCursor)

	if err := registry.Dispatch(protocol.NewPrint("x"), &recordingDisplay{}); err != ErrUnexpectedPacket {
		t.Errorf("Expected ErrUnexpectedPacket, got %v", err)
	}
}
