package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/daksh-app/daksh/backend/pkg/avatar"
	"github.com/daksh-app/daksh/backend/pkg/client"
	"github.com/daksh-app/daksh/backend/pkg/comments"
	"github.com/daksh-app/daksh/backend/pkg/feed"
	"github.com/daksh-app/daksh/backend/pkg/interaction"
	"github.com/daksh-app/daksh/backend/pkg/kvstore"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/daksh-app/daksh/backend/pkg/share"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type config struct {
	Env       string        `env:"FEEDCTL_ENV" env-default:"development"`
	BaseURL   string        `env:"FEEDCTL_BASE_URL" env-default:"http://localhost:8080"`
	Token     string        `env:"FEEDCTL_TOKEN"`
	StudentID string        `env:"FEEDCTL_STUDENT_ID"`
	StatePath string        `env:"FEEDCTL_STATE_PATH" env-default:"feedctl.db"`
	Timeout   time.Duration `env:"FEEDCTL_TIMEOUT" env-default:"15s"`
}

const usage = `Usage: feedctl <command> [args]

  feed [pages]                     load the feed page by page
  comments <postId>                list comments with like status
  comment <postId> <text>          post a comment
  like-comment <postId> <id>       toggle a like on a comment
  like <postId>                    toggle a like on a post
  save <postId>                    toggle a saved post
  share <postId> <contact>         mark a post as shared with a contact`

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	_ = godotenv.Load()
	var cfg config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	lg := logger.New(logger.Opts{Env: cfg.Env})
	api := client.New(client.Options{BaseURL: cfg.BaseURL, Token: cfg.Token, Timeout: cfg.Timeout})

	store, err := kvstore.OpenBolt(cfg.StatePath)
	if err != nil {
		log.Fatalf("Failed to open state: %v", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args[2:]
	switch os.Args[1] {
	case "feed":
		pages := 1
		if len(args) > 0 {
			if pages, err = strconv.Atoi(args[0]); err != nil || pages < 1 {
				log.Fatalf("Invalid page count: %s", args[0])
			}
		}
		err = runFeed(ctx, api, store, lg, pages)
	case "comments":
		need(args, 1)
		err = runComments(ctx, api, cfg.StudentID, lg, args[0])
	case "comment":
		need(args, 2)
		err = runComment(ctx, api, cfg.StudentID, lg, args[0], strings.Join(args[1:], " "))
	case "like-comment":
		need(args, 2)
		id, convErr := strconv.ParseInt(args[1], 10, 64)
		if convErr != nil {
			log.Fatalf("Invalid comment id: %s", args[1])
		}
		err = runLikeComment(ctx, api, cfg.StudentID, lg, args[0], id)
	case "like":
		need(args, 1)
		err = runToggle(ctx, store, lg, interaction.KindLike, interaction.LikePersister(api, cfg.StudentID), args[0])
	case "save":
		need(args, 1)
		err = runToggle(ctx, store, lg, interaction.KindSave, interaction.SavePersister(api), args[0])
	case "share":
		need(args, 2)
		err = runShare(args[0], strings.Join(args[1:], " "))
	default:
		log.Fatalf("Unknown command: %s\n%s", os.Args[1], usage)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func need(args []string, n int) {
	if len(args) < n {
		log.Fatal(usage)
	}
}

const snapshotKey = "feed_snapshot"

func runFeed(ctx context.Context, api *client.API, store kvstore.Store, lg logger.Logger, pages int) error {
	avatars, err := avatar.New(api, store, avatar.Options{Logger: lg})
	if err != nil {
		return err
	}

	loader := feed.NewLoader(api, feed.Options{Logger: lg})
	defer loader.Close()

	loaded := 0
	for i := 0; i < pages; i++ {
		if !loader.LoadMore() {
			break
		}
		loader.Wait()
		loaded++
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	view := loader.View()
	if view.Err != nil {
		return view.Err
	}
	if view.EmptyMessage != "" {
		fmt.Println(view.EmptyMessage)
		return nil
	}
	for _, p := range view.Posts {
		pic := avatars.Preload(ctx, p.Avatar)
		cached := ""
		if strings.HasPrefix(pic, "data:") {
			cached = " [avatar cached]"
		}
		fmt.Printf("%s  @%s  %s  (%d likes, %d comments, %s)%s\n",
			p.ID, p.Username, p.Caption, p.Likes, p.Comments, p.Time, cached)
	}
	if !view.HasMore {
		fmt.Println("-- end of feed --")
	}

	return kvstore.SetJSON(store, snapshotKey, feed.Snapshot{
		Posts:       view.Posts,
		CurrentPage: loaded,
		HasMore:     view.HasMore,
	})
}

func openSession(ctx context.Context, api *client.API, viewer string, lg logger.Logger, postID string) (*comments.Session, error) {
	s := comments.NewSession(api, postID, viewer, lg)
	if err := s.Open(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("%s: %w", s.Error(), err)
	}
	return s, nil
}

func printComments(list []client.Comment) {
	if len(list) == 0 {
		fmt.Println("No comments yet.")
		return
	}
	for _, c := range list {
		heart := " "
		if c.Liked {
			heart = "*"
		}
		fmt.Printf("%d %s @%s: %s (%d likes)\n", c.ID, heart, c.Student.User.Username, c.Comment, c.Likes)
	}
}

func runComments(ctx context.Context, api *client.API, viewer string, lg logger.Logger, postID string) error {
	s, err := openSession(ctx, api, viewer, lg, postID)
	if err != nil {
		return err
	}
	defer s.Close()
	printComments(s.Comments())
	return nil
}

func runComment(ctx context.Context, api *client.API, viewer string, lg logger.Logger, postID, text string) error {
	s, err := openSession(ctx, api, viewer, lg, postID)
	if err != nil {
		return err
	}
	defer s.Close()
	if _, err := s.Send(ctx, text); err != nil {
		return fmt.Errorf("%s: %w", s.Error(), err)
	}
	printComments(s.Comments())
	return nil
}

func runLikeComment(ctx context.Context, api *client.API, viewer string, lg logger.Logger, postID string, commentID int64) error {
	s, err := openSession(ctx, api, viewer, lg, postID)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.ToggleLike(ctx, commentID); err != nil {
		return fmt.Errorf("%s: %w", s.Error(), err)
	}
	printComments(s.Comments())
	return nil
}

func runToggle(ctx context.Context, store kvstore.Store, lg logger.Logger, kind interaction.Kind, p interaction.Persister, postID string) error {
	key := "interaction_" + string(kind)
	var ids []string
	if err := kvstore.GetJSON(store, key, &ids); err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		return err
	}

	set := interaction.New(kind, p, interaction.Options{Logger: lg})
	set.Seed(ids)
	set.Subscribe(func(ev interaction.Event) {
		fmt.Printf("%s %s: %s (member=%t)\n", ev.Command.Kind, ev.Command.Target, ev.Command.Status, ev.Member)
	})

	cmd := set.Toggle(ctx, postID)
	if err := kvstore.SetJSON(store, key, set.IDs()); err != nil {
		return err
	}
	return cmd.Err
}

func runShare(postID, name string) error {
	s := share.NewSession(postID, nil)
	if err := s.Send(name); err != nil {
		fmt.Println("Contacts:")
		for _, c := range s.Contacts() {
			fmt.Println("  " + c.Name)
		}
		return err
	}
	fmt.Printf("Shared %s with %s\n", postID, name)
	return nil
}
