// Command create_admin adds an admin account for the enquiry list pages.
//
// The password is read from ADMIN_PASSWORD or, when that is unset, from the
// first line of standard input:
//
//	echo "$PASSWORD" | create_admin -username alice -email alice@example.com
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/blogem/enquiry-desk/config"
	"github.com/blogem/enquiry-desk/database"
	"github.com/blogem/enquiry-desk/repositories"
	"github.com/blogem/enquiry-desk/services"
)

const passwordEnv = "ADMIN_PASSWORD"

func main() {
	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email address")
	flag.Parse()

	if *username == "" {
		flag.Usage()
		os.Exit(2)
	}

	password, err := readPassword(os.Getenv, os.Stdin)
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.InitializeDatabase(cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	repos := repositories.NewRepositories(database.GetDB(), database.GetDialect())
	auth := services.NewAuthService(repos.AdminUser)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := auth.CreateAdmin(ctx, *username, *email, password)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Created admin %q (id %d)\n", user.Username, user.ID)
}

// readPassword takes the password from the environment, falling back to the
// first line of in
func readPassword(getenv func(string) string, in io.Reader) (string, error) {
	if password := getenv(passwordEnv); password != "" {
		return password, nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("set %s or pipe the password on standard input", passwordEnv)
	}
	return password, nil
}
