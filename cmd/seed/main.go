package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"blogapp/internal/auth"
	"blogapp/internal/config"
	"blogapp/internal/db"
	apperrors "blogapp/internal/errors"
	"blogapp/internal/model"
	"blogapp/internal/repository"
	"blogapp/internal/service"
)

// seedUser is a demo account together with the posts it authors.
type seedUser struct {
	Username string
	Email    string
	Password string
	Posts    []service.PostInput
}

var demoUsers = []seedUser{
	{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "alice123",
		Posts: []service.PostInput{
			{Title: "Getting started with Go", Desc: "Notes from my first week writing Go services.", Categories: []string{"go", "backend"}},
			{Title: "Sourdough diary", Desc: "Day one of keeping a starter alive.", Categories: []string{"cooking"}},
		},
	},
	{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "bob12345",
		Posts: []service.PostInput{
			{Title: "Cycling the coast", Desc: "Three days, two punctures, one great view.", Categories: []string{"travel", "cycling"}},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Connect to database
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	authService := service.NewAuthService(userRepo, hasher, auth.NewJWTService(cfg.JWTSecret, cfg.SessionTTL), auth.NewTokenStore(nil))
	postService := service.NewPostService(postRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo)

	ctx := context.Background()
	users, fresh, err := seedUsers(ctx, authService, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	created := len(fresh)
	if created == 0 {
		log.Println("Demo users already present, nothing to do")
		return
	}

	posts, comments, err := seedContent(ctx, postService, commentService, users, fresh)
	if err != nil {
		log.Fatalf("Failed to seed content: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", created)
	log.Printf("  - Posts created: %d", posts)
	log.Printf("  - Comments created: %d", comments)
}

// seedUsers registers the demo accounts, reusing any that already exist.
// The returned set holds the ids of accounts created by this run.
func seedUsers(ctx context.Context, authService service.AuthService, repo repository.UserRepository) ([]*model.User, map[uuid.UUID]bool, error) {
	users := make([]*model.User, 0, len(demoUsers))
	fresh := make(map[uuid.UUID]bool)
	for _, demo := range demoUsers {
		user, err := authService.Register(ctx, demo.Username, demo.Email, demo.Password)
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			existing, findErr := repo.FindByEmail(ctx, demo.Email)
			if findErr != nil {
				return nil, fresh, fmt.Errorf("username %q is taken by another account: %w", demo.Username, findErr)
			}
			users = append(users, existing)
			continue
		}
		if err != nil {
			return nil, fresh, fmt.Errorf("error registering %s: %w", demo.Username, err)
		}
		users = append(users, user)
		fresh[user.ID] = true
	}
	return users, fresh, nil
}

// seedContent creates the posts of freshly created users and has every
// other demo user comment on them.
func seedContent(ctx context.Context, posts service.PostService, comments service.CommentService, users []*model.User, fresh map[uuid.UUID]bool) (postCount int, commentCount int, err error) {
	for i, author := range users {
		if !fresh[author.ID] {
			continue
		}
		for _, input := range demoUsers[i].Posts {
			post, err := posts.CreatePost(ctx, author.ID, input)
			if err != nil {
				return postCount, commentCount, fmt.Errorf("error creating post %q: %w", input.Title, err)
			}
			postCount++

			for _, reader := range users {
				if reader.ID == author.ID {
					continue
				}
				text := fmt.Sprintf("Nice one, %s!", author.Username)
				if _, err := comments.CreateComment(ctx, reader.ID, post.ID, text, ""); err != nil {
					return postCount, commentCount, fmt.Errorf("error commenting on %q: %w", input.Title, err)
				}
				commentCount++
			}
		}
	}
	return postCount, commentCount, nil
}
