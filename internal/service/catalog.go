package service

import (
	"context"
	"fmt"

	"escape-portal/internal/models"
	"escape-portal/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type GameService struct {
	Repo *repository.GameRepository
}

func NewGameService(repo *repository.GameRepository) *GameService {
	return &GameService{Repo: repo}
}

func (s *GameService) ListGames(ctx context.Context) ([]models.Game, error) {
	return s.Repo.FindAll(ctx)
}

func (s *GameService) GetGame(ctx context.Context, id string) (*models.Game, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *GameService) CreateGame(ctx context.Context, game *models.Game) (string, error) {
	if game.Name == "" {
		return "", fmt.Errorf("%w: game name is required", ErrValidation)
	}
	if game.Status == "" {
		game.Status = models.GameStatusActive
	}
	return s.Repo.Create(ctx, game)
}

func (s *GameService) UpdateGame(ctx context.Context, id string, game *models.Game) error {
	if game.Name == "" {
		return fmt.Errorf("%w: game name is required", ErrValidation)
	}
	return s.Repo.Update(ctx, id, bson.M{
		"name":    game.Name,
		"version": game.Version,
		"url":     game.URL,
		"status":  game.Status,
	})
}

func (s *GameService) DeleteGame(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

type QuizService struct {
	Repo *repository.QuizRepository
}

func NewQuizService(repo *repository.QuizRepository) *QuizService {
	return &QuizService{Repo: repo}
}

func (s *QuizService) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return s.Repo.FindAll(ctx)
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *QuizService) CreateQuiz(ctx context.Context, quiz *models.Quiz) (string, error) {
	if err := validateQuiz(quiz); err != nil {
		return "", err
	}
	return s.Repo.Create(ctx, quiz)
}

func (s *QuizService) UpdateQuiz(ctx context.Context, id string, quiz *models.Quiz) error {
	if err := validateQuiz(quiz); err != nil {
		return err
	}
	return s.Repo.Update(ctx, id, bson.M{
		"title":     quiz.Title,
		"type":      quiz.Type,
		"questions": quiz.Questions,
	})
}

func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func validateQuiz(quiz *models.Quiz) error {
	if quiz.Title == "" {
		return fmt.Errorf("%w: quiz title is required", ErrValidation)
	}
	if quiz.Type != models.QuizTypePre && quiz.Type != models.QuizTypePost {
		return fmt.Errorf("%w: quiz type must be pre or post", ErrValidation)
	}
	for i, q := range quiz.Questions {
		if q.Text == "" || len(q.Answers) < 2 {
			return fmt.Errorf("%w: question %d needs text and at least two answers", ErrValidation, i+1)
		}
		if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Answers) {
			return fmt.Errorf("%w: question %d has an out-of-range correct answer", ErrValidation, i+1)
		}
	}
	return nil
}
