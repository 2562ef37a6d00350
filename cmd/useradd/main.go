// Command useradd creates a tracker account. The password is read from the
// terminal without echo.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/Shubham-musmade/interview-tracker/internal/flagx"
	"github.com/Shubham-musmade/interview-tracker/internal/server"
	"github.com/Shubham-musmade/interview-tracker/internal/server/config"
	"github.com/Shubham-musmade/interview-tracker/internal/server/services"
)

var userFlags = []string{"-username", "-email", "-full-name"}

func main() {
	_ = godotenv.Load()

	var in services.RegisterInput
	fs := flag.NewFlagSet("useradd", flag.ExitOnError)
	fs.StringVar(&in.UserName, "username", "", "account username (required)")
	fs.StringVar(&in.Email, "email", "", "account email")
	fs.StringVar(&in.FullName, "full-name", "", "full name shown in outgoing email")
	_ = fs.Parse(flagx.FilterArgs(os.Args[1:], userFlags))

	if in.UserName == "" {
		fs.Usage()
		os.Exit(2)
	}

	password, err := readPassword()
	if err != nil {
		log.Fatalf("%v", err)
	}
	in.Password = password

	ctx := context.Background()
	app, err := server.NewApp(ctx, config.LoadConfig())
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	u, err := app.Users().Register(ctx, in)
	if err != nil {
		log.Fatalf("create user: %v", err)
	}
	fmt.Printf("created user %s (%s)\n", u.UserName, u.ID)
}

func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	fmt.Fprint(os.Stderr, "Repeat password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(first), nil
}
