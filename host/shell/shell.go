// Package shell provides an ishell backed interactive console that issues
// display commands through a command.Runner.
package shell

import (
	"github.com/abiosoft/ishell"

	"lcdlink/host/command"
)

const unconnectedPrompt = "[none] > "

// Shell wraps the interactive shell and the runner it feeds
type Shell struct {
	Shell  *ishell.Shell
	Runner *command.Runner
}

// New creates a shell bound to runner
func New(runner *command.Runner) *Shell {
	s := &Shell{
		Shell:  ishell.New(),
		Runner: runner,
	}
	s.Shell.SetPrompt(Prompt(runner))
	for _, v := range command.Verbs {
		name := v.Name
		s.Shell.AddCmd(&ishell.Cmd{
			Name: name,
			Help: v.Help,
			Func: func(c *ishell.Context) {
				if err := s.Exec(name, c.Args); err != nil {
					c.Err(err)
				}
			},
		})
	}
	return s
}

// Run starts the interactive loop and returns when the user exits
func (s *Shell) Run() {
	s.Shell.Println("lcdctl interactive shell, type 'help' for commands")
	s.Shell.Run()
	s.Shell.Close()
}

// Exec runs one shell command
func (s *Shell) Exec(name string, args []string) error {
	flags, err := command.FlagsFor(name, args)
	if err != nil {
		return err
	}
	err = s.Runner.Run(flags)
	s.Shell.SetPrompt(Prompt(s.Runner))
	return err
}

// Prompt shows the open port, if any
func Prompt(r *command.Runner) string {
	if !r.IsOpen() {
		return unconnectedPrompt
	}
	return "[" + r.Port() + "] > "
}
