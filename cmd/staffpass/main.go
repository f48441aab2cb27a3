// Command staffpass prints the bcrypt hash to put in STAFF_PASSWORD_HASH.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"libraryapi/internal/platform/crypto"
)

func main() {
	skipCheck := flag.Bool("weak", false, "Skip the password strength check")
	flag.Parse()

	password, err := readPassword(os.Stdin)
	if err != nil {
		log.Fatalf("read password: %v", err)
	}
	hash, err := hashStaffPassword(password, !*skipCheck)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(hash)
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func hashStaffPassword(password string, checkStrength bool) (string, error) {
	if checkStrength {
		if err := crypto.ValidatePasswordStrength(password); err != nil {
			return "", err
		}
	}
	return crypto.HashPassword(password)
}
