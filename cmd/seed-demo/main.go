package main

import (
	"context"
	"fmt"

	"github.com/kryptaroid/lms-career-shiksha/internal/config"
	"github.com/kryptaroid/lms-career-shiksha/internal/database"
	"github.com/kryptaroid/lms-career-shiksha/internal/logger"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/kryptaroid/lms-career-shiksha/internal/repository"
	"github.com/kryptaroid/lms-career-shiksha/internal/service"
	"golang.org/x/crypto/bcrypt"
)

// Seeds one demo course, subject, published quiz, and an enrolled learner
// (learner@example.com / password). Intended for local development only.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

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

	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	quizService := service.NewQuizService(quizRepo, questionRepo, rdb, log)

	course := &model.Course{Title: "UPSC Foundation"}
	if err := courseRepo.Create(ctx, course); err != nil {
		log.Fatal().Err(err).Msg("Failed to create course")
	}

	subject := &model.Subject{CourseID: course.ID, Name: "Indian Polity"}
	if err := subjectRepo.Create(ctx, subject); err != nil {
		log.Fatal().Err(err).Msg("Failed to create subject")
	}

	quiz := &model.Quiz{
		Title:            "Polity Basics",
		CourseID:         course.ID,
		SubjectID:        subject.ID,
		TotalTimeMinutes: 10,
		NegativeMarking:  0.25,
		Status:           model.QuizStatusDraft,
	}
	if err := quizRepo.Create(ctx, quiz); err != nil {
		log.Fatal().Err(err).Msg("Failed to create quiz")
	}

	questions := []model.Question{
		{
			QuizID:       quiz.ID,
			QuestionText: "Who is known as the father of the Indian Constitution?",
			Options: []model.QuestionOption{
				{Text: "B. R. Ambedkar", IsCorrect: true},
				{Text: "Jawaharlal Nehru"},
				{Text: "Mahatma Gandhi"},
				{Text: "Sardar Patel"},
			},
			Marks: 1,
		},
		{
			QuizID:       quiz.ID,
			QuestionText: "How many fundamental rights does the Indian Constitution guarantee?",
			Options: []model.QuestionOption{
				{Text: "Five"},
				{Text: "Six", IsCorrect: true},
				{Text: "Seven"},
				{Text: "Eight"},
			},
			Marks: 1,
		},
		{
			QuizID:       quiz.ID,
			QuestionText: "Which article deals with the Right to Equality?",
			Options: []model.QuestionOption{
				{Text: "Article 14", IsCorrect: true},
				{Text: "Article 19"},
				{Text: "Article 21"},
				{Text: "Article 32"},
			},
			Marks: 2,
		},
	}
	for i := range questions {
		if err := questionRepo.Create(ctx, &questions[i]); err != nil {
			log.Fatal().Err(err).Msg("Failed to create question")
		}
	}

	if err := quizService.Publish(ctx, quiz.ID); err != nil {
		log.Fatal().Err(err).Msg("Failed to publish quiz")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}
	learner := &model.User{
		Name:         "Demo Learner",
		Email:        "learner@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleLearner,
	}
	if err := userRepo.Create(ctx, learner); err != nil {
		log.Fatal().Err(err).Msg("Failed to create learner")
	}
	if err := userRepo.Enrol(ctx, learner.ID, course.ID); err != nil {
		log.Fatal().Err(err).Msg("Failed to enrol learner")
	}

	fmt.Printf("Seeded course %s, quiz %s, learner %s\n", course.ID, quiz.ID, learner.Email)
}
