package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirmReady asks for an explicit go-ahead. Anything but "y" declines.
func confirmReady() (bool, error) {
	answer, err := readLine("Enter 'y' if you are ready to proceed or any other key to exit... ")
	if err != nil {
		return false, err
	}
	return strings.ToLower(answer) == "y", nil
}

// promptCredentials collects the QRZ username and password. The password is
// read without echo; the literal answer "quit" aborts before any network
// call, since the XML interface sends credentials in cleartext.
func promptCredentials() (username, password string, quit bool, err error) {
	username, err = readLine("Login with your QRZ username: ")
	if err != nil {
		return "", "", false, err
	}

	fmt.Println()
	fmt.Println("!!! SECURITY WARNING !!! Your QRZ password is sent in PLAIN TEXT over an")
	fmt.Println("unencrypted http connection. If you are uncomfortable with this, enter")
	fmt.Println("\"quit\" at the password prompt to exit immediately.")
	fmt.Println()

	fmt.Print("Enter your QRZ password: ")
	raw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", false, err
	}
	password = string(raw)
	if password == "quit" {
		return "", "", true, nil
	}
	return username, password, false, nil
}
