// Command useradd creates an account directly in the database, for seeding
// deployments without going through the HTTP API.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"outlay/internal/model"
	"outlay/internal/store"
	"outlay/internal/store/postgres"
	"outlay/internal/store/sqlite"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

const defaultDB = "outlay.db"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	fs.SetOutput(stderr)

	identifier := fs.String("identifier", "", "Login identifier")
	secretFlag := fs.String("secret", "", "Secret (optional, will prompt if omitted)")
	dbRef := fs.String("db", defaultDB, "SQLite path or postgres:// URL")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*identifier) == "" {
		fmt.Fprintln(stdout, "Usage: useradd -identifier <identifier> [-secret <secret>] [-db <database>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: identifier")
	}

	secret := *secretFlag
	if secret == "" {
		fmt.Fprint(stdout, "Secret: ")
		var err error
		secret, err = readSecret(stdin)
		if err != nil {
			return fmt.Errorf("failed to read secret: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if strings.TrimSpace(secret) == "" {
		return fmt.Errorf("secret cannot be empty")
	}

	// The env var only applies when the flag was left at its default.
	if ref := os.Getenv("DATABASE_URL"); ref != "" && *dbRef == defaultDB {
		*dbRef = ref
	}

	st, closer, err := openStore(*dbRef)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closer()

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash secret: %w", err)
	}

	user, err := st.CreateUser(context.Background(), model.User{
		Identifier: strings.TrimSpace(*identifier),
		SecretHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("user %s already exists", *identifier)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %s\n", user.Identifier, user.ID)
	return nil
}

func openStore(dbRef string) (store.Store, func(), error) {
	if strings.HasPrefix(dbRef, "postgres://") || strings.HasPrefix(dbRef, "postgresql://") {
		ctx := context.Background()
		pool, err := postgres.Connect(ctx, dbRef)
		if err != nil {
			return nil, nil, err
		}
		pg, err := postgres.NewStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}

	sq, err := sqlite.NewStore(dbRef)
	if err != nil {
		return nil, nil, err
	}
	return sq, func() { _ = sq.Close() }, nil
}

func readSecret(stdin io.Reader) (string, error) {
	// Hide input when attached to a terminal.
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Fallback for non-terminal input (tests, pipes).
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
