// Package seed provides database seeding utilities for development and
// testing. It populates users, content plans and calendar posts with
// realistic data.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"postpilot/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	PlansPerUser int
	ShouldClean  bool
}

var (
	niches = []string{
		"fitness", "vegan cooking", "personal finance", "indie game dev",
		"home barista", "urban gardening", "travel photography", "book reviews",
		"productivity", "machine learning", "woodworking", "street fashion",
	}

	platforms = []string{"instagram", "linkedin", "x", "tiktok"}

	goals = []string{
		"grow followers", "drive newsletter signups", "build brand awareness",
		"launch a product", "increase engagement", "establish thought leadership",
	}

	tones = []string{
		"casual", "professional", "playful", "inspirational", "educational", "witty",
	}

	formatsByPlatform = map[string][]string{
		"instagram": {"post", "reel", "story", "carousel"},
		"linkedin":  {"post", "article", "poll"},
		"x":         {"tweet", "thread", "poll"},
		"tiktok":    {"video", "duet", "stitch"},
	}
)

// Seeder creates test and demo data.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// ClearAll removes all seeded data. Posts go first to satisfy references.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"posts", "plans", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// SeedUsers creates n users. Every user gets the password "password123".
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, models.User{
			Email:    fmt.Sprintf("%s%d@%s", gofakeit.Username(), gofakeit.Number(100, 999), gofakeit.DomainName()),
			Password: string(hashed),
		})
	}
	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedPlans creates plansPerUser plans for every user, each with a full
// 30-day set of draft posts as if a calendar had been generated.
func (s *Seeder) SeedPlans(users []models.User, plansPerUser int) ([]models.Plan, error) {
	var plans []models.Plan
	for _, user := range users {
		for i := 0; i < plansPerUser; i++ {
			plan := models.Plan{
				UserID:   user.ID,
				Name:     fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.NounAbstract()),
				Niche:    pick(s.r, niches),
				Platform: pick(s.r, platforms),
				Goal:     pick(s.r, goals),
				Tone:     pick(s.r, tones),
			}
			if err := s.db.Create(&plan).Error; err != nil {
				return nil, fmt.Errorf("seed plan: %w", err)
			}

			posts := s.buildPosts(&plan)
			if err := s.db.Create(&posts).Error; err != nil {
				return nil, fmt.Errorf("seed posts: %w", err)
			}
			plans = append(plans, plan)
		}
	}
	log.Printf("Seeded %d plans with posts", len(plans))
	return plans, nil
}

func (s *Seeder) buildPosts(plan *models.Plan) []models.Post {
	formats := formatsByPlatform[plan.Platform]
	start := time.Now().AddDate(0, 0, -s.r.Intn(30))

	posts := make([]models.Post, 0, 30)
	for day := 1; day <= 30; day++ {
		date := time.Date(start.Year(), start.Month(), start.Day(),
			6+s.r.Intn(14), 15*s.r.Intn(4), 0, 0, time.Local).AddDate(0, 0, day-1)

		posts = append(posts, models.Post{
			PlanID:  plan.ID,
			Day:     day,
			Date:    date,
			Format:  pick(s.r, formats),
			Caption: gofakeit.Sentence(8 + s.r.Intn(10)),
			Hashtags: []string{
				"#" + gofakeit.BuzzWord(),
				"#" + gofakeit.HackerNoun(),
				"#" + gofakeit.AdjectiveDescriptive(),
			},
			Status: models.PostStatusDraft,
		})
	}
	return posts
}

// Run executes the full seeding flow per the options.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}
	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	_, err = s.SeedPlans(users, opts.PlansPerUser)
	return err
}

func pick(r *rand.Rand, options []string) string {
	return options[r.Intn(len(options))]
}
