package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"ctfrange/database"
	"ctfrange/models"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupIntegrationDB(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	requireDocker(t)

	dsn, cleanup := startPostgres(t, ctx)
	t.Cleanup(cleanup)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Category{},
		&models.Challenge{},
		&models.Attempt{},
		&models.Solve{},
		&models.LessonSettings{},
		&models.LessonTemplate{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db
	database.REDIS = nil
}

func seedChallenge(t *testing.T, flag string, maxAttempts int) models.Challenge {
	t.Helper()
	category := models.Category{Name: "Web"}
	if err := database.DB.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	challenge := models.Challenge{
		Title:       "SQL injection 101",
		CategoryID:  category.ID,
		Flag:        flag,
		Points:      100,
		MaxAttempts: maxAttempts,
		IsActive:    true,
	}
	if err := database.DB.Create(&challenge).Error; err != nil {
		t.Fatalf("seed challenge: %v", err)
	}
	return challenge
}

func seedUser(t *testing.T, username string, groups ...*models.Group) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@test.local",
		Password: "x",
		Groups:   groups,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func TestSubmitFlagIdempotence(t *testing.T) {
	setupIntegrationDB(t)
	challenge := seedChallenge(t, "CTF{union_select}", 0)
	user := seedUser(t, "alice")

	result, err := SubmitFlag(user, challenge.ID, "CTF{union_select}")
	if err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if !result.Accepted || !result.Correct {
		t.Fatalf("expected the first correct submission accepted, got %+v", result)
	}

	_, err = SubmitFlag(user, challenge.ID, "CTF{union_select}")
	if !errors.Is(err, ErrAlreadySolved) {
		t.Fatalf("expected ErrAlreadySolved on resubmission, got %v", err)
	}

	var solveCount, attemptCount int64
	database.DB.Model(&models.Solve{}).Count(&solveCount)
	database.DB.Model(&models.Attempt{}).Count(&attemptCount)
	if solveCount != 1 {
		t.Fatalf("expected exactly one solve, got %d", solveCount)
	}
	if attemptCount != 1 {
		t.Fatalf("rejected resubmission must not record an attempt, got %d attempts", attemptCount)
	}
}

func TestConcurrentCorrectSubmissionsSingleSolve(t *testing.T) {
	setupIntegrationDB(t)
	challenge := seedChallenge(t, "CTF{union_select}", 0)
	user := seedUser(t, "alice")

	start := make(chan struct{})
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			<-start
			_, err := SubmitFlag(user, challenge.ID, "CTF{union_select}")
			results <- err
		}()
	}
	close(start)

	var accepted, alreadySolved int
	for i := 0; i < 2; i++ {
		switch err := <-results; {
		case err == nil:
			accepted++
		case errors.Is(err, ErrAlreadySolved):
			alreadySolved++
		default:
			t.Fatalf("unexpected submission error: %v", err)
		}
	}
	if accepted != 1 || alreadySolved != 1 {
		t.Fatalf("expected one accepted and one already-solved, got %d/%d", accepted, alreadySolved)
	}

	// The unique index must hold exactly one solve whatever the interleaving
	var solveCount int64
	database.DB.Model(&models.Solve{}).
		Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).
		Count(&solveCount)
	if solveCount != 1 {
		t.Fatalf("expected exactly one solve under concurrency, got %d", solveCount)
	}
}

func TestExclusiveApplyLeavesOnlyMembersActive(t *testing.T) {
	setupIntegrationDB(t)

	category := models.Category{Name: "Web"}
	if err := database.DB.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	var all []*models.Challenge
	for i := 0; i < 5; i++ {
		ch := &models.Challenge{
			Title:      fmt.Sprintf("challenge-%d", i),
			CategoryID: category.ID,
			Flag:       fmt.Sprintf("CTF{%d}", i),
			Points:     100,
			IsActive:   true,
		}
		if err := database.DB.Create(ch).Error; err != nil {
			t.Fatalf("seed challenge: %v", err)
		}
		all = append(all, ch)
	}

	template := models.LessonTemplate{
		Title:      "Intro lesson",
		Challenges: []*models.Challenge{all[1], all[3]},
	}
	if err := database.DB.Create(&template).Error; err != nil {
		t.Fatalf("seed template: %v", err)
	}

	affected, err := ApplyLessonTemplate(template.ID, ApplyExclusive)
	if err != nil {
		t.Fatalf("exclusive apply failed: %v", err)
	}
	if affected != 2 {
		t.Fatalf("expected 2 challenges affected by the enable step, got %d", affected)
	}

	var active []models.Challenge
	if err := database.DB.Where("is_active = ?", true).Order("id").Find(&active).Error; err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected exactly the 2 members active, got %d", len(active))
	}
	if active[0].ID != all[1].ID || active[1].ID != all[3].ID {
		t.Fatalf("wrong challenges left active: %d, %d", active[0].ID, active[1].ID)
	}
}

func TestProgressionOriginIgnoresMentorSolves(t *testing.T) {
	setupIntegrationDB(t)
	challenge := seedChallenge(t, "CTF{union_select}", 0)

	mentors := models.Group{Name: models.MentorsGroup}
	if err := database.DB.Create(&mentors).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}
	mentor := seedUser(t, "mentor", &mentors)
	alice := seedUser(t, "alice")

	origin := time.Now().Add(-60 * time.Minute)
	mentorSolve := models.Solve{UserID: mentor.ID, ChallengeID: challenge.ID, Date: origin}
	if err := database.DB.Create(&mentorSolve).Error; err != nil {
		t.Fatalf("seed mentor solve: %v", err)
	}
	aliceSolve := models.Solve{UserID: alice.ID, ChallengeID: challenge.ID, Date: origin.Add(30 * time.Minute)}
	if err := database.DB.Create(&aliceSolve).Error; err != nil {
		t.Fatalf("seed solve: %v", err)
	}

	series, err := GetProgression(10, alice)
	if err != nil {
		t.Fatalf("progression failed: %v", err)
	}
	if len(series) != 1 || series[0].UserID != alice.ID {
		t.Fatalf("expected only alice charted, got %+v", series)
	}

	// Alice's solve is the earliest in the competing population, so her
	// first step sits at the origin, not 30 minutes after a mentor solve.
	points := series[0].Points
	if len(points) < 2 {
		t.Fatalf("expected origin and step points, got %+v", points)
	}
	if points[1].Minutes > 1.0 {
		t.Fatalf("expected the first step near minute 0, got %f", points[1].Minutes)
	}
	if points[1].Points != challenge.Points {
		t.Fatalf("expected a %d point step, got %d", challenge.Points, points[1].Points)
	}
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "ctf", "POSTGRES_PASSWORD": "ctfpass", "POSTGRES_DB": "ctfdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://ctf:ctfpass@%s:%s/ctfdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}
