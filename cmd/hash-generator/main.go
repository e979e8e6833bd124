// Command hash-generator prints the bcrypt hash of each password given on
// the command line, using the same cost as the API server. Useful for
// seeding users directly in SQL.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/tasktrack/tasktrack-api/internal/service/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator PASSWORD [PASSWORD...]")
		os.Exit(2)
	}

	for _, password := range os.Args[1:] {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), auth.BcryptCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error hashing %q: %v\n", password, err)
			os.Exit(1)
		}
		fmt.Printf("%s\t%s\n", password, hash)
	}
}
