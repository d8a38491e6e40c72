package challenges

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ctfrange/database"
	"ctfrange/models"

	"github.com/gin-gonic/gin"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupHandlerDB(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}

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
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://ctf:ctfpass@%s:%s/ctfdb?sslmode=disable", host, port.Port())

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
}

func jsonRequest(method string, body interface{}) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestUpdateChallengeUnknownCategory(t *testing.T) {
	setupHandlerDB(t)

	category := models.Category{Name: "Web"}
	if err := database.DB.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	challenge := models.Challenge{
		Title:      "SQL injection 101",
		CategoryID: category.ID,
		Flag:       "CTF{union_select}",
		IsActive:   true,
	}
	if err := database.DB.Create(&challenge).Error; err != nil {
		t.Fatalf("seed challenge: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(challenge.ID)}}
	c.Request = jsonRequest(http.MethodPut, ChallengeRequest{
		Title:      "SQL injection 101",
		CategoryID: category.ID + 1000,
		Flag:       "CTF{union_select}",
	})

	UpdateChallenge(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown category, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), ErrCategoryNotFound) {
		t.Fatalf("expected category error message, got %s", w.Body.String())
	}

	var unchanged models.Challenge
	if err := database.DB.First(&unchanged, "id = ?", challenge.ID).Error; err != nil {
		t.Fatalf("reload challenge: %v", err)
	}
	if unchanged.CategoryID != category.ID {
		t.Fatalf("rejected update must not change the category, got %d", unchanged.CategoryID)
	}
}

func TestListChallengesShowsRecentSolvers(t *testing.T) {
	setupHandlerDB(t)

	category := models.Category{Name: "Web"}
	if err := database.DB.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	challenge := models.Challenge{
		Title:      "SQL injection 101",
		CategoryID: category.ID,
		Flag:       "CTF{union_select}",
		Points:     100,
		IsActive:   true,
	}
	if err := database.DB.Create(&challenge).Error; err != nil {
		t.Fatalf("seed challenge: %v", err)
	}
	alice := models.User{Username: "alice", Email: "alice@test.local", Password: "x"}
	if err := database.DB.Create(&alice).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	solve := models.Solve{UserID: alice.ID, ChallengeID: challenge.ID, Date: time.Now()}
	if err := database.DB.Create(&solve).Error; err != nil {
		t.Fatalf("seed solve: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("currentUser", alice)

	ListChallenges(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var items []ChallengeListItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one challenge, got %d", len(items))
	}
	if !items[0].Solved {
		t.Fatalf("expected the challenge marked solved for alice")
	}
	if len(items[0].Solvers) != 1 || items[0].Solvers[0].User != "alice" {
		t.Fatalf("expected alice among recent solvers, got %+v", items[0].Solvers)
	}
}
