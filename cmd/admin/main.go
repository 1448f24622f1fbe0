package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spec-kit/codepulse/internal/api/dto"
	"github.com/spec-kit/codepulse/internal/client/api"
	"github.com/spec-kit/codepulse/internal/client/session"
	"github.com/spec-kit/codepulse/internal/domain"
)

// consoleNavigator applies guard effects in the terminal: a redirect prints
// the login prompt with the preserved destination, a denial prints the
// unauthorized notice without touching the session.
type consoleNavigator struct{}

func (consoleNavigator) RedirectToLogin(returnURL string) {
	fmt.Printf("session expired or missing; log in again (wanted %s)\n", returnURL)
}

func (consoleNavigator) Unauthorized(target string) {
	fmt.Printf("unauthorized: %s requires the Writer role\n", target)
}

func main() {
	baseURL := flag.String("api", envOr("CODEPULSE_API_URL", "http://127.0.0.1:8080"), "API base URL")
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	store := session.NewStore()
	client := api.NewClient(*baseURL, store)
	guard := session.NewGuard(store, consoleNavigator{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, args, client, guard, *email, *password); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, client *api.Client, guard *session.Guard, email, password string) error {
	switch args[0] {
	case "register":
		if err := client.Register(ctx, email, password); err != nil {
			return err
		}
		fmt.Println("registered")
		return nil

	case "categories":
		return withLogin(ctx, client, email, password, func() error {
			if len(args) > 1 && args[1] == "add" {
				if len(args) != 4 {
					return fmt.Errorf("usage: categories add <name> <urlHandle>")
				}
				if !guard.Check("/admin/categories/add", domain.RoleWriter) {
					return nil
				}
				category, err := client.CreateCategory(ctx, args[2], args[3])
				if err != nil {
					return err
				}
				fmt.Printf("created category %s (%s)\n", category.Name, category.ID)
				return nil
			}

			categories, err := client.ListCategories(ctx, "")
			if err != nil {
				return err
			}
			for _, category := range categories {
				fmt.Printf("%s\t%s\t%s\n", category.ID, category.Name, category.URLHandle)
			}
			return nil
		})

	case "posts":
		return withLogin(ctx, client, email, password, func() error {
			if len(args) > 1 && args[1] == "add" {
				if len(args) != 5 {
					return fmt.Errorf("usage: posts add <title> <urlHandle> <content>")
				}
				if !guard.Check("/admin/blogposts/add", domain.RoleWriter) {
					return nil
				}
				post, err := client.CreatePost(ctx, dto.BlogPostRequest{
					Title:     args[2],
					URLHandle: args[3],
					Content:   args[4],
					Author:    email,
					IsVisible: true,
				})
				if err != nil {
					return err
				}
				fmt.Printf("created post %s (%s)\n", post.Title, post.ID)
				return nil
			}

			posts, err := client.ListPosts(ctx)
			if err != nil {
				return err
			}
			for _, post := range posts {
				fmt.Printf("%s\t%s\t%s\n", post.ID, post.Title, post.URLHandle)
			}
			return nil
		})

	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func withLogin(ctx context.Context, client *api.Client, email, password string, fn func() error) error {
	if email != "" {
		if _, err := client.Login(ctx, email, password); err != nil {
			return err
		}
		defer client.Logout()
	}
	return fn()
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: admin [-api URL] [-email EMAIL] [-password PASSWORD] <command>

commands:
  register                              create an account
  categories                            list categories
  categories add <name> <urlHandle>     create a category (Writer)
  posts                                 list posts
  posts add <title> <urlHandle> <body>  create a post (Writer)`)
}
