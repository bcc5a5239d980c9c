// Package seed loads fixture data from YAML and writes it to the database in
// a single transaction.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"gopkg.in/yaml.v3"

	"github.com/GyroZepelix/newsboard/internal/auth"
)

//go:embed data/dev.yaml
var devData []byte

// Data is a complete fixture set.
type Data struct {
	Gallery  []string  `yaml:"gallery"`
	Avatars  []string  `yaml:"avatars"`
	Topics   []Topic   `yaml:"topics"`
	Users    []User    `yaml:"users"`
	Articles []Article `yaml:"articles"`
	Comments []Comment `yaml:"comments"`
}

type Topic struct {
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

// User holds a plaintext password that is hashed when seeding.
type User struct {
	Username string `yaml:"username"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	AvatarID int    `yaml:"avatar_id"`
}

type Article struct {
	Title     string    `yaml:"title"`
	Topic     string    `yaml:"topic"`
	Author    string    `yaml:"author"`
	Body      string    `yaml:"body"`
	CreatedAt time.Time `yaml:"created_at"`
	Votes     int       `yaml:"votes"`
	ImgID     int       `yaml:"img_id"`
}

// Comment references its article by title, since article ids are assigned
// on insert.
type Comment struct {
	Article   string    `yaml:"article"`
	Author    string    `yaml:"author"`
	Body      string    `yaml:"body"`
	Votes     int       `yaml:"votes"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Dev returns the embedded development data set.
func Dev() (*Data, error) {
	return Load(bytes.NewReader(devData))
}

// Load parses a fixture set. Unknown keys are rejected.
func Load(r io.Reader) (*Data, error) {
	var d Data
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("parsing seed data: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// validate checks what the schema cannot: the placeholder rows exist and
// every comment names a known article.
func (d *Data) validate() error {
	if len(d.Gallery) == 0 {
		return errors.New("seed data needs at least one gallery image")
	}
	if len(d.Avatars) == 0 {
		return errors.New("seed data needs at least one avatar")
	}

	titles := make(map[string]bool, len(d.Articles))
	for _, a := range d.Articles {
		if titles[a.Title] {
			return fmt.Errorf("duplicate article title %q", a.Title)
		}
		titles[a.Title] = true
	}
	for i, c := range d.Comments {
		if !titles[c.Article] {
			return fmt.Errorf("comment %d references unknown article %q", i, c.Article)
		}
	}
	return nil
}

// TxRunner runs fn inside a transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// Run replaces the contents of every domain table with d. Either all rows
// are written or none are.
func Run(ctx context.Context, db TxRunner, d *Data) error {
	hashes := make([]string, len(d.Users))
	for i, u := range d.Users {
		h, err := auth.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", u.Username, err)
		}
		hashes[i] = h
	}

	return db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`TRUNCATE comments, articles, users, topics, gallery, avatars, audit_log RESTART IDENTITY CASCADE`,
		); err != nil {
			return fmt.Errorf("truncating tables: %w", err)
		}

		if err := copyRows(ctx, tx, "gallery", []string{"img_url"}, len(d.Gallery), func(i int) []any {
			return []any{d.Gallery[i]}
		}); err != nil {
			return err
		}
		if err := copyRows(ctx, tx, "avatars", []string{"avatar_img_url"}, len(d.Avatars), func(i int) []any {
			return []any{d.Avatars[i]}
		}); err != nil {
			return err
		}
		if err := copyRows(ctx, tx, "topics", []string{"slug", "description"}, len(d.Topics), func(i int) []any {
			return []any{d.Topics[i].Slug, d.Topics[i].Description}
		}); err != nil {
			return err
		}
		if err := copyRows(ctx, tx, "users", []string{"username", "name", "email", "password", "avatar_id"}, len(d.Users), func(i int) []any {
			u := d.Users[i]
			return []any{u.Username, u.Name, u.Email, hashes[i], orDefault(u.AvatarID)}
		}); err != nil {
			return err
		}

		articleIDs := make(map[string]int, len(d.Articles))
		for _, a := range d.Articles {
			var id int
			err := tx.QueryRow(ctx,
				`INSERT INTO articles (title, topic, author, body, created_at, votes, img_id)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)
				 RETURNING article_id`,
				a.Title, a.Topic, a.Author, a.Body, orNow(a.CreatedAt), a.Votes, orDefault(a.ImgID),
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("inserting article %q: %w", a.Title, err)
			}
			articleIDs[a.Title] = id
		}

		if err := copyRows(ctx, tx, "comments", []string{"body", "article_id", "author", "votes", "created_at"}, len(d.Comments), func(i int) []any {
			c := d.Comments[i]
			return []any{c.Body, articleIDs[c.Article], c.Author, c.Votes, orNow(c.CreatedAt)}
		}); err != nil {
			return err
		}

		slog.Info("seeded database",
			"topics", len(d.Topics),
			"users", len(d.Users),
			"articles", len(d.Articles),
			"comments", len(d.Comments),
		)
		return nil
	})
}

func copyRows(ctx context.Context, tx pgx.Tx, table string, columns []string, n int, row func(i int) []any) error {
	_, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromSlice(n, func(i int) ([]any, error) {
		return row(i), nil
	}))
	if err != nil {
		return fmt.Errorf("copying %s: %w", table, err)
	}
	return nil
}

// orDefault maps an unset image or avatar reference to the placeholder row.
func orDefault(id int) int {
	if id < 1 {
		return 1
	}
	return id
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
