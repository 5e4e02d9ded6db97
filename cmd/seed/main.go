package main

import (
	"fmt"
	"log"

	"mentorship/internal/app"
	"mentorship/internal/config"
	"mentorship/internal/database"
	"mentorship/internal/domain/account"
	"mentorship/internal/domain/availability"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mentorSeed struct {
	email    string
	name     string
	headline string
	skills   []string
	rate     float64
	zone     string
	days     []int
	from, to string
}

var mentors = []mentorSeed{
	{"aigerim@mentors.dev", "Aigerim Sadykova", "Staff backend engineer", []string{"go", "postgres", "system design"}, 80, "Asia/Almaty", []int{1, 3, 5}, "09:00", "17:00"},
	{"daniel@mentors.dev", "Daniel Weber", "Engineering manager", []string{"leadership", "career"}, 120, "Europe/Berlin", []int{2, 4}, "12:00", "20:00"},
	{"maria@mentors.dev", "Maria Lopez", "Frontend architect", []string{"typescript", "react"}, 60, "UTC", []int{1, 2, 3, 4, 5}, "14:00", "22:00"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := app.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	for _, table := range []string{
		"notifications", "reviews", "sessions", "availability_slots", "availability_dates",
		"availability_windows", "mentor_active_sessions", "mentor_profiles", "accounts",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	adminHash := hash("admin123")
	create(db, &account.Account{
		Kind: account.KindAdmin, Email: "admin@mentors.dev", PasswordHash: adminHash,
		Name: "Administrator", TimeZone: "UTC", IsActive: true,
	})
	log.Println("Admin created: admin@mentors.dev / admin123")

	mentorHash := hash("mentor123")
	for _, m := range mentors {
		a := &account.Account{
			Kind:         account.KindMentor,
			Email:        m.email,
			PasswordHash: mentorHash,
			Name:         m.name,
			TimeZone:     m.zone,
			IsActive:     true,
			Mentor: &account.MentorProfile{
				Headline:   m.headline,
				Skills:     m.skills,
				HourlyRate: m.rate,
				IsVerified: true,
			},
		}
		create(db, a)

		for _, day := range m.days {
			create(db, &availability.Window{
				MentorID:  a.ID,
				DayOfWeek: day,
				StartTime: m.from,
				EndTime:   m.to,
				Recurring: true,
			})
		}
		log.Printf("Mentor created: %s / mentor123 (%d windows)", m.email, len(m.days))
	}

	learnerHash := hash("learner123")
	for i := 1; i <= 3; i++ {
		email := fmt.Sprintf("learner%d@mentors.dev", i)
		create(db, &account.Account{
			Kind: account.KindLearner, Email: email, PasswordHash: learnerHash,
			Name: fmt.Sprintf("Learner %d", i), TimeZone: "UTC", IsActive: true,
		})
		log.Printf("Learner created: %s / learner123", email)
	}

	log.Println("Seed completed")
}

func hash(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	return string(h)
}

func create(db *gorm.DB, v any) {
	if err := db.Create(v).Error; err != nil {
		log.Fatalf("create %T: %v", v, err)
	}
}
