/* main.go
 * The "main" method for running the contest platform server. For details about
 * the service see `readme.md`
 * Usage: go run main.go
 */

package main

import (
	"log"
	"os"

	api "contest-beaters/api/api"
	"contest-beaters/api/auth"
	"contest-beaters/payments"
	"contest-beaters/web"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "contestBeatersDB"
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":5000"
	}

	a, err := api.NewAPI(dbName, mongoURI)
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}
	defer func() {
		if err := a.Store.Disconnect(); err != nil {
			panic(err)
		}
	}()

	tokens, err := auth.NewTokenService(jwtSecret)
	if err != nil {
		log.Fatalf("failed to initialize token service: %v", err)
	}

	provider, err := payments.NewProvider(os.Getenv("PAYMENT_PROVIDER"))
	if err != nil {
		log.Fatalf("failed to initialize payment provider: %v", err)
	}

	if err := web.Start(web.Config{
		Addr:     addr,
		API:      a,
		Tokens:   tokens,
		Payments: provider,
	}); err != nil {
		log.Fatal(err)
	}
}
