package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/config"
	"github.com/zaharrrov001-hue/vidcourse-lesson-manager/internal/userstore"
)

// users manages the flat user-record store: who may sync, their GetCourse
// credentials, and the Drive folder linked to them.
func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		dbPath  string
		add     string
		name    string
		account string
		apiKey  string
		folder  string
		list    bool
		get     string
		del     string
	)

	flag.StringVar(&dbPath, "db", "", "Path to the user database (default from VIDCOURSE_USERS_DB)")
	flag.StringVar(&add, "add", "", "Add a user with this email")
	flag.StringVar(&name, "name", "", "Display name (with -add)")
	flag.StringVar(&account, "account", "", "GetCourse account name (with -add or -get)")
	flag.StringVar(&apiKey, "api-key", "", "GetCourse API key (with -add or -get)")
	flag.StringVar(&folder, "folder", "", "Linked Drive folder id (with -add or -get)")
	flag.BoolVar(&list, "list", false, "List all users")
	flag.StringVar(&get, "get", "", "Show (and optionally update) a user by id or email")
	flag.StringVar(&del, "delete", "", "Delete a user by id")
	flag.Parse()

	if dbPath == "" {
		dbPath = config.Load().UsersDBPath
	}

	store, err := userstore.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", dbPath).Msg("open user store")
	}
	defer store.Close()

	ctx := context.Background()

	switch {
	case add != "":
		u, err := store.Create(ctx, userstore.User{
			Email:            add,
			Name:             name,
			GetCourseAccount: account,
			GetCourseAPIKey:  apiKey,
			DriveFolderID:    folder,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("create user")
		}
		fmt.Printf("created %s (%s)\n", u.ID, u.Email)

	case list:
		users, err := store.List(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("list users")
		}
		if len(users) == 0 {
			fmt.Println("no users")
			return
		}
		for _, u := range users {
			printUser(u)
		}

	case get != "":
		u, err := lookup(ctx, store, get)
		if err != nil {
			log.Fatal().Err(err).Msg("get user")
		}
		// Any provided field updates the record; the record is written
		// wholesale.
		changed := false
		if account != "" {
			u.GetCourseAccount = account
			changed = true
		}
		if apiKey != "" {
			u.GetCourseAPIKey = apiKey
			changed = true
		}
		if folder != "" {
			u.DriveFolderID = folder
			changed = true
		}
		if name != "" {
			u.Name = name
			changed = true
		}
		if changed {
			if err := store.Update(ctx, u); err != nil {
				log.Fatal().Err(err).Msg("update user")
			}
			fmt.Println("updated")
		}
		printUser(u)

	case del != "":
		if err := store.Delete(ctx, del); err != nil {
			log.Fatal().Err(err).Msg("delete user")
		}
		fmt.Println("deleted")

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func lookup(ctx context.Context, store *userstore.SQLiteStore, ref string) (userstore.User, error) {
	if u, err := store.Get(ctx, ref); err == nil {
		return u, nil
	}
	return store.GetByEmail(ctx, ref)
}

func printUser(u userstore.User) {
	fmt.Printf("%s  %s\n", u.ID, u.Email)
	if u.Name != "" {
		fmt.Printf("    name:    %s\n", u.Name)
	}
	if u.GetCourseAccount != "" {
		fmt.Printf("    account: %s\n", u.GetCourseAccount)
	}
	if u.DriveFolderID != "" {
		fmt.Printf("    folder:  %s\n", u.DriveFolderID)
	}
	fmt.Printf("    created: %s\n", u.CreatedAt.Format(time.RFC3339))
}
