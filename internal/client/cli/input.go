package cli

import (
	"bufio"
	"fmt"
	"strings"

	"golang.org/x/term"
)

// getSimpleText prompts for one line of input.
func getSimpleText(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// getPassword prompts for a password without echoing it.
func getPassword(prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	data, err := term.ReadPassword(0)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
