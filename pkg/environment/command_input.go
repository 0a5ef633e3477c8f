package environment

// CommandInput is a view over an argument vector split into the executable
// path and the remaining, not-yet-consumed tokens.
type CommandInput struct {
	ExecutablePath string
	Arguments      []string
}

// CommandInput returns the environment's argument vector split into
// executable path and remaining tokens. An environment with an empty
// argument vector yields a zero CommandInput.
func (e Environment) CommandInput() CommandInput {
	if len(e.args) == 0 {
		return CommandInput{}
	}
	return CommandInput{
		ExecutablePath: e.args[0],
		Arguments:      append([]string(nil), e.args[1:]...),
	}
}

// SetCommandInput replaces the argument vector with the concatenation of
// the executable path and tokens. This is the one sanctioned way to mutate
// an environment's arguments after construction.
func (e *Environment) SetCommandInput(input CommandInput) {
	args := make([]string, 0, len(input.Arguments)+1)
	args = append(args, input.ExecutablePath)
	args = append(args, input.Arguments...)
	e.args = args
}
