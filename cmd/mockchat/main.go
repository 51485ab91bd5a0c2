package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/matheus3301/mockchat/internal/app"
	"github.com/matheus3301/mockchat/internal/session"
	"go.uber.org/fx"
)

func main() {
	sessionFlag := flag.String("session", "", "session name (overrides config default)")
	flag.Parse()

	// A .env file in the working directory may carry MOCKCHAT_* overrides.
	_ = godotenv.Load()

	sessionName := session.Resolve(*sessionFlag)
	if err := session.ValidateName(sessionName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	client := fx.New(
		app.Module(app.Params{SessionName: sessionName}),
		app.Logger(),
	)
	if err := client.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	client.Run()
}
