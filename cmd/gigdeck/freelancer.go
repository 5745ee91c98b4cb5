package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wrenard/gigdeck/internal/auth"
	"github.com/wrenard/gigdeck/internal/config"
	"github.com/wrenard/gigdeck/internal/domain"
	"github.com/wrenard/gigdeck/internal/freelancer"
	"github.com/wrenard/gigdeck/internal/tui"
)

// runAuth runs the OAuth flow interactively and persists the access token.
// All prompts are written to stderr so stdout remains clean for piping.
func runAuth(cfg config.Config, configPath string, args []string) error {
	fs := flag.NewFlagSet("auth", flag.ExitOnError)
	clientCredentials := fs.Bool("client-credentials", false, "use the app-only client credentials flow (no browser)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	flow := auth.NewFlow(
		cfg.Freelancer.ClientID,
		cfg.Freelancer.ClientSecret,
		cfg.Freelancer.RedirectURI,
		"",
	)
	ctx := context.Background()

	var token auth.TokenResponse
	var err error
	if *clientCredentials {
		fmt.Fprintf(os.Stderr, "Requesting app token...\n")
		token, err = flow.ClientCredentials(ctx)
	} else {
		fmt.Fprintf(os.Stderr, "Starting OAuth authorization...\n")
		fmt.Fprintf(os.Stderr, "Opening your browser. Waiting for the redirect on %s\n", auth.DefaultRedirectURI)
		token, err = flow.Authorize(ctx, func(url string) error {
			if openErr := auth.OpenBrowser(url); openErr != nil {
				fmt.Fprintf(os.Stderr, "Could not open a browser. Visit:\n%s\n", url)
			}
			return nil
		})
	}
	if err != nil {
		return err
	}

	cfg.Freelancer.AccessToken = token.AccessToken
	if saveErr := config.Save(configPath, cfg); saveErr != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save token to config: %v (you will need to re-authenticate next run)\n", saveErr)
	} else {
		fmt.Fprintf(os.Stderr, "Authenticated. Token saved to %s\n", configPath)
	}
	fmt.Printf("access token: %s\n", token.AccessToken)
	fmt.Printf("expires in:   %ds\n", token.ExpiresIn)
	return nil
}

func freelancerClient(cfg config.Config) (*freelancer.Client, error) {
	if cfg.Freelancer.AccessToken == "" {
		return nil, fmt.Errorf("no access token configured: run gigdeck auth first")
	}
	return freelancer.NewClient(cfg.Freelancer.AccessToken, cfg.Freelancer.URL), nil
}

func runWhoami(cfg config.Config, _ []string) error {
	client, err := freelancerClient(cfg)
	if err != nil {
		return err
	}
	user, err := client.Self()
	if err != nil {
		return err
	}
	fmt.Printf("id:       %d\n", user.ID)
	fmt.Printf("username: %s\n", user.Username)
	fmt.Printf("name:     %s\n", user.DisplayName)
	if user.Email != "" {
		fmt.Printf("email:    %s\n", user.Email)
	}
	fmt.Printf("status:   %s\n", user.Status)
	return nil
}

func searchFlags(fs *flag.FlagSet) (query *string, filter func() (domain.Filter, error)) {
	query = fs.String("q", "", "search query")
	minBudget := fs.Float64("min-budget", 0, "minimum average budget")
	maxBudget := fs.Float64("max-budget", 0, "maximum average budget")
	skills := fs.String("skills", "", "comma-separated skill category ids")
	limit := fs.Int("limit", 0, "maximum results")
	filter = func() (domain.Filter, error) {
		f := domain.Filter{MinBudget: *minBudget, MaxBudget: *maxBudget, Limit: *limit}
		if *skills != "" {
			for _, raw := range strings.Split(*skills, ",") {
				id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
				if err != nil {
					return domain.Filter{}, fmt.Errorf("invalid skill id %q", raw)
				}
				f.SkillIDs = append(f.SkillIDs, id)
			}
		}
		return f, nil
	}
	return query, filter
}

func runSearch(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query, parseFilter := searchFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter, err := parseFilter()
	if err != nil {
		return err
	}
	if filter.Limit == 0 {
		filter.Limit = cfg.SearchLimitOrDefault()
	}

	client, err := freelancerClient(cfg)
	if err != nil {
		return err
	}
	projects, err := client.SearchActiveProjects(*query, filter)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("no projects found")
		return nil
	}
	for _, p := range projects {
		fmt.Printf("%d  %.0f-%.0f %s  %d bids  %s\n",
			p.ID, p.Budget.Minimum, p.Budget.Maximum, p.CurrencyCode, p.Bids.Count, p.Title)
	}
	return nil
}

func runProject(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("project", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: gigdeck project <id> [id...]")
	}
	var ids []int64
	for _, raw := range fs.Args() {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", raw)
		}
		ids = append(ids, id)
	}

	client, err := freelancerClient(cfg)
	if err != nil {
		return err
	}
	projects, err := client.ProjectDetails(ids)
	if err != nil {
		return err
	}
	for i, p := range projects {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (#%d)\n", p.Title, p.ID)
		fmt.Printf("  type:   %s (%s)\n", p.Type, p.Status)
		fmt.Printf("  budget: %.0f-%.0f %s\n", p.Budget.Minimum, p.Budget.Maximum, p.CurrencyCode)
		fmt.Printf("  bids:   %d (avg %.0f)\n", p.Bids.Count, p.Bids.Average)
		fmt.Printf("  %s\n", p.Description)
	}
	return nil
}

func runSkills(cfg config.Config, _ []string) error {
	client, err := freelancerClient(cfg)
	if err != nil {
		return err
	}
	categories, err := client.JobCategories()
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Printf("%d\t%s\n", c.ID, c.Name)
	}
	return nil
}

func runContests(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("contests", flag.ExitOnError)
	limit := fs.Int("limit", 0, "maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := freelancerClient(cfg)
	if err != nil {
		return err
	}
	contests, err := client.ActiveContests(*limit)
	if err != nil {
		return err
	}
	if len(contests) == 0 {
		fmt.Println("no active contests")
		return nil
	}
	for _, c := range contests {
		fmt.Printf("%d  %.0f %s  %d entries  %s\n",
			c.ID, c.Prize, c.CurrencyCode, c.EntryCount, c.Title)
	}
	return nil
}

func runMonitor(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("monitor", flag.ExitOnError)
	query, parseFilter := searchFlags(fs)
	interval := fs.Duration("interval", tui.DefaultPollInterval, "poll interval")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter, err := parseFilter()
	if err != nil {
		return err
	}
	if filter.Limit == 0 {
		filter.Limit = cfg.SearchLimitOrDefault()
	}

	client, err := freelancerClient(cfg)
	if err != nil {
		return err
	}
	tui.Run(client, *query, filter, *interval)
	return nil
}

// runSmoke exercises every read endpoint once. It is the quickest way to
// confirm a fresh token works end to end.
func runSmoke(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("smoke", flag.ExitOnError)
	query := fs.String("q", "golang", "search query to exercise")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := freelancerClient(cfg)
	if err != nil {
		return err
	}

	user, err := client.Self()
	if err != nil {
		return fmt.Errorf("self: %w", err)
	}
	fmt.Printf("self:     ok (%s)\n", user.Username)

	projects, err := client.SearchActiveProjects(*query, domain.Filter{Limit: 5})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	fmt.Printf("search:   ok (%d projects)\n", len(projects))

	if len(projects) > 0 {
		details, err := client.ProjectDetails([]int64{projects[0].ID})
		if err != nil {
			return fmt.Errorf("project details: %w", err)
		}
		fmt.Printf("details:  ok (%d records)\n", len(details))
	}

	categories, err := client.JobCategories()
	if err != nil {
		return fmt.Errorf("job categories: %w", err)
	}
	fmt.Printf("skills:   ok (%d categories)\n", len(categories))

	contests, err := client.ActiveContests(5)
	if err != nil {
		return fmt.Errorf("contests: %w", err)
	}
	fmt.Printf("contests: ok (%d contests)\n", len(contests))
	return nil
}
