package core

import (
	"errors"

	"lcdlink/protocol"
)

// CommandHandler executes one decoded packet against the display
type CommandHandler func(p protocol.Packet, display DisplayDriver) error

// Command binds a packet tag to its handler
type Command struct {
	Tag     protocol.Tag
	Name    string
	Handler CommandHandler
}

// CommandRegistry holds all registered commands, keyed by tag
type CommandRegistry struct {
	commands map[protocol.Tag]*Command
}

// ErrUnexpectedPacket is returned when a handler receives a packet of the wrong variant
var ErrUnexpectedPacket = errors.New("core: handler received unexpected packet variant")

// NewCommandRegistry creates an empty command registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[protocol.Tag]*Command),
	}
}

// NewDisplayRegistry returns a registry with the display commands registered
func NewDisplayRegistry() *CommandRegistry {
	r := NewCommandRegistry()
	r.Register(protocol.TagIdle, "idle", handleIdle)
	r.Register(protocol.TagClear, "clear", handleClear)
	r.Register(protocol.TagSetCursor, "set_cursor", handleSetCursor)
	r.Register(protocol.TagPrint, "print", handlePrint)
	r.Register(protocol.TagPrintGlyph, "print_glyph", handlePrintGlyph)
	r.Register(protocol.TagCreateGlyph, "create_glyph", handleCreateGlyph)
	return r
}

// Register adds a command to the registry, replacing any handler for the same tag
func (r *CommandRegistry) Register(tag protocol.Tag, name string, handler CommandHandler) {
	r.commands[tag] = &Command{
		Tag:     tag,
		Name:    name,
		Handler: handler,
	}
}

// GetCommand retrieves a command by tag
func (r *CommandRegistry) GetCommand(tag protocol.Tag) (*Command, bool) {
	cmd, ok := r.commands[tag]
	return cmd, ok
}

// Count returns the number of registered commands
func (r *CommandRegistry) Count() int {
	return len(r.commands)
}

// Dispatch calls the handler registered for the packet's tag
func (r *CommandRegistry) Dispatch(p protocol.Packet, display DisplayDriver) error {
	cmd, ok := r.GetCommand(p.Tag())
	if !ok {
		return &protocol.UnknownTagError{Tag: byte(p.Tag())}
	}
	if cmd.Handler == nil {
		return nil
	}
	return cmd.Handler(p, display)
}

func handleIdle(protocol.Packet, DisplayDriver) error {
	return nil
}

func handleClear(_ protocol.Packet, display DisplayDriver) error {
	display.Clear()
	return nil
}

func handleSetCursor(p protocol.Packet, display DisplayDriver) error {
	sc, ok := p.(protocol.SetCursor)
	if !ok {
		return ErrUnexpectedPacket
	}
	display.SetCursor(sc.Row, sc.Column)
	return nil
}

func handlePrint(p protocol.Packet, display DisplayDriver) error {
	pr, ok := p.(protocol.Print)
	if !ok {
		return ErrUnexpectedPacket
	}
	display.Print(pr.Bytes())
	return nil
}

func handlePrintGlyph(p protocol.Packet, display DisplayDriver) error {
	pg, ok := p.(protocol.PrintGlyph)
	if !ok {
		return ErrUnexpectedPacket
	}
	display.PrintGlyph(pg.Index)
	return nil
}

func handleCreateGlyph(p protocol.Packet, display DisplayDriver) error {
	cg, ok := p.(protocol.CreateGlyph)
	if !ok {
		return ErrUnexpectedPacket
	}
	display.DefineGlyph(cg.Index, cg.Bitmap)
	return nil
}
