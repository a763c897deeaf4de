// token はAPIクライアント向けのJWTを発行するCLIです。
//
//	token -client batch-worker [-scope vision] [-ttl 720h]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"vision_backend/internal/platform/envfile"
	jwtmw "vision_backend/internal/platform/jwt"
)

func main() {
	envfile.Load()

	if err := run(os.Args[1:], os.Stdout, jwtmw.LoadConfig()); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer, cfg jwtmw.Config) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	clientID := fs.String("client", "", "client id stored in the sub claim")
	scope := fs.String("scope", jwtmw.ScopeVision, "comma separated scopes")
	ttl := fs.Duration("ttl", 30*24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *clientID == "" {
		return errors.New("-client is required")
	}
	if *ttl <= 0 {
		return errors.New("-ttl must be positive")
	}

	var scopes []string
	for _, s := range strings.Split(*scope, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}

	token, err := jwtmw.NewGenerator(cfg, *ttl).GenerateToken(*clientID, scopes)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
