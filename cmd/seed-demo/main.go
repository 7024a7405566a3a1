package main

import (
	"context"
	"fmt"
	"time"

	"github.com/campusq/survey-backend/internal/config"
	"github.com/campusq/survey-backend/internal/database"
	"github.com/campusq/survey-backend/internal/logger"
	"github.com/campusq/survey-backend/internal/model"
	"github.com/campusq/survey-backend/internal/repository"
	"github.com/campusq/survey-backend/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	departmentRepo := repository.NewDepartmentRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	surveyRepo := repository.NewSurveyRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	responseRepo := repository.NewResponseRepository(pool)

	authService := service.NewAuthService(cfg, rdb)
	departmentService := service.NewDepartmentService(departmentRepo)
	studentService := service.NewStudentService(studentRepo, authService, log)
	adminService := service.NewAdminService(adminRepo, authService, log)
	surveyService := service.NewSurveyService(surveyRepo, questionRepo, responseRepo, rdb, log)

	fmt.Println("=== Seeding Demo Data ===")

	// Departments
	departments := []model.Department{
		{Name: "Computer Science", Code: "CS"},
		{Name: "Economics", Code: "ECON"},
		{Name: "Psychology", Code: "PSY"},
	}
	for i := range departments {
		if err := departmentService.Create(ctx, &departments[i]); err != nil {
			log.Fatal().Err(err).Msg("Failed to create department")
		}
	}
	fmt.Printf("Created %d departments\n", len(departments))

	// Staff admin owning the demo survey
	owner, err := adminService.Create(ctx, &model.CreateAdminRequest{
		Name:     "Demo Researcher",
		Email:    "researcher@campusq.local",
		Role:     model.RoleStaff,
		Password: "research123",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create demo admin")
	}
	fmt.Printf("Created admin %s (ID %d)\n", owner.Email, owner.ID)

	// Students
	names := []string{
		"Alex Morgan", "Bailey Chen", "Casey Novak", "Devin Park", "Elliot Reyes",
		"Frankie Adams", "Gray Thompson", "Harper Singh", "Indra Wijaya", "Jordan Lee",
		"Kai Nakamura", "Lane Fischer", "Morgan Blake", "Noel Garcia", "Ola Hansen",
		"Parker Quinn", "Quincy Ford", "Riley Stone", "Sam Okafor", "Toni Russo",
	}
	created := 0
	for i, name := range names {
		gender := model.GenderMale
		if i%2 != 0 {
			gender = model.GenderFemale
		}
		_, err := studentService.Create(ctx, &model.CreateStudentRequest{
			StudentNo:    fmt.Sprintf("S%05d", i+1),
			Name:         name,
			Gender:       gender,
			AcademicYear: i%4 + 1,
			DepartmentID: departments[i%len(departments)].ID,
			Password:     "student123",
		})
		if err != nil {
			fmt.Printf("Error creating student %s: %v\n", name, err)
			continue
		}
		created++
	}
	fmt.Printf("Created %d/%d students\n", created, len(names))

	// Demo survey with one question of each type, published at the end.
	survey := &model.Survey{
		Title:                "Campus Dining Satisfaction",
		Description:          "Tell us how the cafeteria is doing this semester.",
		OwnerID:              owner.ID,
		RequiredParticipants: 15,
		TargetGender:         model.TargetGenderAll,
	}
	if err := surveyService.Create(ctx, survey); err != nil {
		log.Fatal().Err(err).Msg("Failed to create demo survey")
	}

	questions := []model.AddQuestionRequest{
		{
			QuestionText: "Which meal periods do you usually eat at the cafeteria?",
			QuestionType: string(model.QuestionTypeMultipleChoice),
			Required:     true,
			OrderNum:     1,
			Options: []model.AddOptionRequest{
				{Text: "Breakfast", OrderNum: 1},
				{Text: "Lunch", OrderNum: 2},
				{Text: "Dinner", OrderNum: 3},
			},
		},
		{
			QuestionText: "Which campus cafeteria do you visit most often?",
			QuestionType: string(model.QuestionTypeSingleAnswer),
			Required:     true,
			OrderNum:     2,
			Options: []model.AddOptionRequest{
				{Text: "Main Hall", OrderNum: 1},
				{Text: "North Wing", OrderNum: 2},
			},
		},
		{
			QuestionText: "What would you improve about the menu?",
			QuestionType: string(model.QuestionTypeOpenText),
			Required:     false,
			OrderNum:     3,
		},
		{
			QuestionText: "How satisfied are you with the food quality overall?",
			QuestionType: string(model.QuestionTypePercentage),
			Required:     true,
			OrderNum:     4,
		},
	}
	if err := surveyService.SetQuestions(ctx, survey.ID, owner.ID, questions); err != nil {
		log.Fatal().Err(err).Msg("Failed to create demo questions")
	}
	if err := surveyService.Publish(ctx, survey.ID, owner.ID); err != nil {
		log.Fatal().Err(err).Msg("Failed to publish demo survey")
	}

	fmt.Printf("\nSeed completed! Published survey %s\n", survey.ID)
}
