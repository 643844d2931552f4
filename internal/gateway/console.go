package gateway

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/meera/sahay/internal/agent"
)

// ConsoleGateway is the interactive CLI front end. It reads one line at a
// time, routes everything that is not a command through the Brain, and prints
// the composed response with failures visually distinguished. A failed
// request never ends the session.
type ConsoleGateway struct {
	Brain agent.Brain
	In    io.Reader
	Out   io.Writer

	title   *color.Color
	hint    *color.Color
	prompt  *color.Color
	header  *color.Color
	failure *color.Color
}

func NewConsoleGateway(brain agent.Brain) *ConsoleGateway {
	return &ConsoleGateway{
		Brain:   brain,
		In:      os.Stdin,
		Out:     os.Stdout,
		title:   color.New(color.FgCyan, color.Bold),
		hint:    color.New(color.FgYellow),
		prompt:  color.New(color.FgGreen),
		header:  color.New(color.FgBlue, color.Bold),
		failure: color.New(color.FgRed),
	}
}

func (cg *ConsoleGateway) Start() error {
	cg.title.Fprintln(cg.Out, "Sahay - Interactive Mode")
	cg.hint.Fprintln(cg.Out, "Type 'quit' or 'exit' to stop the program")
	cg.hint.Fprintln(cg.Out, "Type 'help' to see example inputs")
	fmt.Fprintln(cg.Out)

	scanner := bufio.NewScanner(cg.In)
	for {
		cg.prompt.Fprint(cg.Out, "You: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit", "q":
			cg.title.Fprintln(cg.Out, "Goodbye!")
			return nil
		case "help":
			cg.printHelp()
			continue
		}

		response, err := cg.Brain.Think(context.Background(), "console", line)
		if err != nil {
			cg.failure.Fprintf(cg.Out, "Error: %v\n\n", err)
			continue
		}

		fmt.Fprintln(cg.Out)
		cg.header.Fprintln(cg.Out, "Agent Results:")
		for _, resultLine := range strings.Split(response, "\n") {
			if strings.Contains(resultLine, "ERROR:") {
				cg.failure.Fprintf(cg.Out, "  • %s\n", resultLine)
			} else {
				fmt.Fprintf(cg.Out, "  • %s\n", resultLine)
			}
		}
		fmt.Fprintln(cg.Out)
	}
	return scanner.Err()
}

func (cg *ConsoleGateway) printHelp() {
	fmt.Fprintln(cg.Out)
	cg.title.Fprintln(cg.Out, "Example Inputs:")
	for i, example := range exampleInputs {
		cg.hint.Fprintf(cg.Out, "  %d.", i+1)
		fmt.Fprintf(cg.Out, " %s\n", example)
	}
	fmt.Fprintln(cg.Out)
}

func (cg *ConsoleGateway) Send(chatID string, text string) error {
	_, err := fmt.Fprintln(cg.Out, text)
	return err
}

func (cg *ConsoleGateway) Stop() error {
	return nil
}
