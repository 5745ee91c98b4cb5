package main

import (
	"fmt"
	"os"

	"github.com/wrenard/gigdeck/internal/config"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

const usage = `gigdeck - freelance marketplace and ad campaign toolkit

Usage:
  gigdeck <command> [flags]

Freelancer commands:
  auth       authorize with Freelancer.com and save the access token
  whoami     show the authenticated user profile
  search     search active projects
  project    show full details for project ids
  skills     list the job category taxonomy
  contests   list active contests
  monitor    watch a search for new projects in a TUI
  smoke      run a read-only API round-trip against every endpoint

Meta Ads commands:
  verify     check gateway credentials, accounts, and campaigns
  post-ad    create a paused lead campaign: image, ad set, creative, ad
  metrics    fetch insights and print a performance report

Flags:
  -version   print version and exit
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if os.Args[1] == "-version" || os.Args[1] == "--version" {
		fmt.Println("gigdeck", version)
		return
	}

	configPath := config.DefaultConfigPath()
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "auth":
		err = runAuth(cfg, configPath, args)
	case "whoami":
		err = runWhoami(cfg, args)
	case "search":
		err = runSearch(cfg, args)
	case "project":
		err = runProject(cfg, args)
	case "skills":
		err = runSkills(cfg, args)
	case "contests":
		err = runContests(cfg, args)
	case "monitor":
		err = runMonitor(cfg, args)
	case "smoke":
		err = runSmoke(cfg, args)
	case "verify":
		err = runVerify(cfg, args)
	case "post-ad":
		err = runPostAd(cfg, args)
	case "metrics":
		err = runMetrics(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "gigdeck %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}
