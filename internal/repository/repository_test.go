package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogapp/internal/db"
	"blogapp/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func createUser(t *testing.T, repo UserRepository, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: username + "@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository_UniqueFields(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	alice := createUser(t, repo, "alice")
	assert.NotEqual(t, uuid.Nil, alice.ID)

	err := repo.Create(ctx, &model.User{Username: "alice", Email: "other@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = repo.Create(ctx, &model.User{Username: "other", Email: "alice@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	found, err := repo.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepository_ListSearchAndOrder(t *testing.T) {
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	posts := NewPostRepository(gormDB)
	ctx := context.Background()
	alice := createUser(t, users, "alice")

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"Hello Go", "100% pure", "Goodbye"} {
		p := &model.Post{
			Title:         title,
			Desc:          "body",
			OwnerUserID:   alice.ID,
			OwnerUsername: alice.Username,
			Categories:    []string{"go"},
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, posts.Create(ctx, p))
	}

	all, err := posts.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Goodbye", all[0].Title)
	assert.Equal(t, []string{"go"}, all[0].Categories)

	found, err := posts.List(ctx, "Go")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = posts.List(ctx, "%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "100% pure", found[0].Title)

	mine, err := posts.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	none, err := posts.ListByOwner(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestPostRepository_UpdateNeverRewritesOwner(t *testing.T) {
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	posts := NewPostRepository(gormDB)
	ctx := context.Background()
	alice := createUser(t, users, "alice")

	post := &model.Post{Title: "t", Desc: "d", OwnerUserID: alice.ID, OwnerUsername: "alice"}
	require.NoError(t, posts.Create(ctx, post))

	post.Title = "new title"
	post.OwnerUserID = uuid.New()
	post.OwnerUsername = "mallory"
	require.NoError(t, posts.Update(ctx, post))

	stored, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "new title", stored.Title)
	assert.Equal(t, alice.ID, stored.OwnerUserID)
	assert.Equal(t, "alice", stored.OwnerUsername)
}

func TestPostRepository_DeleteWithComments(t *testing.T) {
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	posts := NewPostRepository(gormDB)
	comments := NewCommentRepository(gormDB)
	ctx := context.Background()
	alice := createUser(t, users, "alice")

	post := &model.Post{Title: "t", Desc: "d", OwnerUserID: alice.ID, OwnerUsername: "alice"}
	require.NoError(t, posts.Create(ctx, post))
	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: post.ID, Comment: "hi", OwnerUserID: alice.ID, OwnerUsername: "alice"}))

	require.NoError(t, posts.DeleteWithComments(ctx, post.ID))

	_, err := posts.FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	left, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	assert.ErrorIs(t, posts.DeleteWithComments(ctx, post.ID), gorm.ErrRecordNotFound)
}

func TestCommentRepository_Delete(t *testing.T) {
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	comments := NewCommentRepository(gormDB)
	ctx := context.Background()
	alice := createUser(t, users, "alice")
	postID := uuid.New()

	first := &model.Comment{PostID: postID, Comment: "one", OwnerUserID: alice.ID, OwnerUsername: "alice"}
	second := &model.Comment{PostID: postID, Comment: "two", OwnerUserID: alice.ID, OwnerUsername: "alice", CreatedAt: time.Now().Add(time.Minute)}
	require.NoError(t, comments.Create(ctx, first))
	require.NoError(t, comments.Create(ctx, second))

	require.NoError(t, comments.Delete(ctx, first.ID))
	left, err := comments.ListByPost(ctx, postID)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "two", left[0].Comment)

	assert.ErrorIs(t, comments.Delete(ctx, first.ID), gorm.ErrRecordNotFound)
}

func TestUserRepository_UpdateRenamePropagates(t *testing.T) {
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	posts := NewPostRepository(gormDB)
	comments := NewCommentRepository(gormDB)
	ctx := context.Background()
	alice := createUser(t, users, "alice")

	post := &model.Post{Title: "t", Desc: "d", OwnerUserID: alice.ID, OwnerUsername: "alice"}
	require.NoError(t, posts.Create(ctx, post))
	comment := &model.Comment{PostID: post.ID, Comment: "c", OwnerUserID: alice.ID, OwnerUsername: "alice"}
	require.NoError(t, comments.Create(ctx, comment))

	alice.Username = "alicia"
	require.NoError(t, users.Update(ctx, alice, true))

	storedPost, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "alicia", storedPost.OwnerUsername)
	storedComment, err := comments.FindByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "alicia", storedComment.OwnerUsername)
}

func TestUserRepository_DeleteCascade(t *testing.T) {
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	posts := NewPostRepository(gormDB)
	comments := NewCommentRepository(gormDB)
	ctx := context.Background()
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	alicePost := &model.Post{Title: "a", Desc: "d", OwnerUserID: alice.ID, OwnerUsername: "alice"}
	bobPost := &model.Post{Title: "b", Desc: "d", OwnerUserID: bob.ID, OwnerUsername: "bob"}
	require.NoError(t, posts.Create(ctx, alicePost))
	require.NoError(t, posts.Create(ctx, bobPost))

	// bob on alice's post, alice on bob's post, bob on his own post
	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: alicePost.ID, Comment: "x", OwnerUserID: bob.ID, OwnerUsername: "bob"}))
	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: bobPost.ID, Comment: "y", OwnerUserID: alice.ID, OwnerUsername: "alice"}))
	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: bobPost.ID, Comment: "z", OwnerUserID: bob.ID, OwnerUsername: "bob"}))

	require.NoError(t, users.DeleteCascade(ctx, alice.ID))

	_, err := users.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = posts.FindByID(ctx, alicePost.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	onBobs, err := comments.ListByPost(ctx, bobPost.ID)
	require.NoError(t, err)
	require.Len(t, onBobs, 1)
	assert.Equal(t, "z", onBobs[0].Comment)

	onAlices, err := comments.ListByPost(ctx, alicePost.ID)
	require.NoError(t, err)
	assert.Empty(t, onAlices)

	assert.ErrorIs(t, users.DeleteCascade(ctx, alice.ID), gorm.ErrRecordNotFound)
}
